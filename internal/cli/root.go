package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"
)

func (a *App) getStatus() string {
	u := a.store.CurrentUser()
	if u == nil {
		return ""
	}
	s := u.Username
	if u.IsAdmin {
		s += " admin"
	}
	return fmt.Sprintf("(%s)", s)
}

func (a *App) Root(ctx context.Context) {
	fmt.Println("Prediction Market CLI (type 'help' for commands)")

	if a.isLoggedIn() {
		// A stale token fails its first request and trips the 401 hook.
		a.auth.RefreshSession(ctx)
	}

	scanner := bufio.NewScanner(os.Stdin)
	runREPL(ctx, a, a.getStatus, scanner)
}
