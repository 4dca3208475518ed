package cli

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"predmarket-cli/internal/api"
)

const adminUsage = `Admin commands:
  admin users                     list users
  admin user <id>                 show one user
  admin balance <id> <amount>     set a user's balance
  admin grant <id>                grant admin rights
  admin revoke <id>               revoke admin rights
  admin markets                   list all markets, resolved included
  admin create                    create a market (interactive)
  admin edit <id>                 edit a market (interactive)
  admin delete <id>               delete a market
  admin resolve <id> <yes|no>     resolve a market
  admin tx [user <id>] [type <t>] list transactions
  admin positions [user <id>] [market <id>]
  admin stats                     platform statistics`

// adminPageSize bounds the tx and positions listings.
const adminPageSize = 50

// Admin dispatches the admin console subcommands. The service layer
// rejects calls without a locally known admin flag; the server enforces
// the real check on every request.
func (a *App) Admin(ctx context.Context, args []string) error {
	if !a.isLoggedIn() {
		fmt.Println("Please log in first")
		return nil
	}

	a.auth.RefreshSession(ctx)

	if len(args) == 0 {
		fmt.Println(adminUsage)
		return nil
	}

	var err error
	switch args[0] {
	case "users":
		err = a.adminUsers(ctx)
	case "user":
		err = a.adminUser(ctx, args[1:])
	case "balance":
		err = a.adminBalance(ctx, args[1:])
	case "grant":
		err = a.adminSetAdmin(ctx, args[1:], true)
	case "revoke":
		err = a.adminSetAdmin(ctx, args[1:], false)
	case "markets":
		err = a.adminMarkets(ctx)
	case "create":
		err = a.adminCreate(ctx)
	case "edit":
		err = a.adminEdit(ctx, args[1:])
	case "delete":
		err = a.adminDelete(ctx, args[1:])
	case "resolve":
		err = a.adminResolve(ctx, args[1:])
	case "tx":
		err = a.adminTransactions(ctx, args[1:])
	case "positions":
		err = a.adminPositions(ctx, args[1:])
	case "stats":
		err = a.adminStats(ctx)
	default:
		fmt.Println(adminUsage)
		return nil
	}

	if err != nil {
		fmt.Println(flowMessage(err))
	}
	return err
}

func (a *App) adminUsers(ctx context.Context) error {
	users, err := a.admin.ListUsers(ctx)
	if err != nil {
		return err
	}
	fmt.Printf("%-5s %-24s %12s %6s\n", "ID", "USERNAME", "BALANCE", "ADMIN")
	for _, u := range users {
		fmt.Printf("%-5d %-24s %12.2f %6t\n", u.ID, u.Username, u.Balance, u.IsAdmin)
	}
	return nil
}

func (a *App) adminUser(ctx context.Context, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: admin user <id>")
	}
	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	u, err := a.admin.GetUser(ctx, id)
	if err != nil {
		return err
	}
	fmt.Printf("#%d %s balance=%.2f admin=%t theme=%s notifications=%t joined=%s\n",
		u.ID, u.Username, u.Balance, u.IsAdmin, u.Theme, u.EmailNotifications, u.CreatedAt.Local().Format("2006-01-02"))
	return nil
}

func (a *App) adminBalance(ctx context.Context, args []string) error {
	if len(args) < 2 {
		return fmt.Errorf("usage: admin balance <id> <amount>")
	}
	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	balance, err := strconv.ParseFloat(args[1], 64)
	if err != nil || balance < 0 {
		return fmt.Errorf("expected a non-negative amount")
	}
	u, err := a.admin.UpdateUser(ctx, id, api.UserUpdate{Balance: &balance})
	if err != nil {
		return err
	}
	fmt.Printf("Balance of %s set to %.2f\n", u.Username, u.Balance)
	return nil
}

func (a *App) adminSetAdmin(ctx context.Context, args []string, isAdmin bool) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: admin grant|revoke <id>")
	}
	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	u, err := a.admin.UpdateUser(ctx, id, api.UserUpdate{IsAdmin: &isAdmin})
	if err != nil {
		return err
	}
	fmt.Printf("%s admin=%t\n", u.Username, u.IsAdmin)
	return nil
}

func (a *App) adminMarkets(ctx context.Context) error {
	markets, err := a.admin.ListMarkets(ctx)
	if err != nil {
		return err
	}
	fmt.Printf("%-5s %-50s %8s %9s\n", "ID", "QUESTION", "YES", "STATE")
	for _, m := range markets {
		state := "open"
		if m.IsResolved {
			state = "resolved"
		}
		fmt.Printf("%-5d %-50s %7.1f%% %9s\n", m.ID, truncate(m.Question, 50), m.ProbYes*100, state)
	}
	return nil
}

func (a *App) adminCreate(ctx context.Context) error {
	question, err := getSimpleText(a.reader, "Question", os.Stdout)
	if err != nil {
		return err
	}
	description, err := getSimpleText(a.reader, "Description", os.Stdout)
	if err != nil {
		return err
	}
	endStr, err := getSimpleText(a.reader, "End date (YYYY-MM-DD)", os.Stdout)
	if err != nil {
		return err
	}
	endDate, err := time.ParseInLocation("2006-01-02", endStr, time.Local)
	if err != nil {
		return fmt.Errorf("expected a date like 2026-12-31")
	}
	poolStr, err := getSimpleText(a.reader, "Initial pool", os.Stdout)
	if err != nil {
		return err
	}
	pool, err := strconv.ParseFloat(poolStr, 64)
	if err != nil || pool <= 0 {
		return fmt.Errorf("expected a positive pool size")
	}

	m, err := a.admin.CreateMarket(ctx, api.MarketCreate{
		Question:    question,
		Description: description,
		EndDate:     endDate,
		InitialPool: pool,
	})
	if err != nil {
		return err
	}
	fmt.Printf("Created market #%d\n", m.ID)
	return nil
}

func (a *App) adminEdit(ctx context.Context, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: admin edit <id>")
	}
	id, err := parseID(args[0])
	if err != nil {
		return err
	}

	var update api.MarketUpdate

	s, err := getSimpleText(a.reader, "New question (empty to keep)", os.Stdout)
	if err != nil {
		return err
	}
	if s != "" {
		update.Question = &s
	}
	s, err = getSimpleText(a.reader, "New description (empty to keep)", os.Stdout)
	if err != nil {
		return err
	}
	if s != "" {
		update.Description = &s
	}
	s, err = getSimpleText(a.reader, "New end date YYYY-MM-DD (empty to keep)", os.Stdout)
	if err != nil {
		return err
	}
	if s != "" {
		endDate, err := time.ParseInLocation("2006-01-02", s, time.Local)
		if err != nil {
			return fmt.Errorf("expected a date like 2026-12-31")
		}
		update.EndDate = &endDate
	}

	if update.Question == nil && update.Description == nil && update.EndDate == nil {
		fmt.Println("Nothing to change")
		return nil
	}

	m, err := a.admin.UpdateMarket(ctx, id, update)
	if err != nil {
		return err
	}
	fmt.Printf("Updated market #%d\n", m.ID)
	return nil
}

func (a *App) adminDelete(ctx context.Context, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: admin delete <id>")
	}
	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	confirm, err := getSimpleText(a.reader, fmt.Sprintf("Delete market #%d and all its positions? (y/n)", id), os.Stdout)
	if err != nil {
		return err
	}
	if strings.ToLower(confirm) != "y" {
		fmt.Println("Cancelled")
		return nil
	}
	if err := a.admin.DeleteMarket(ctx, id); err != nil {
		return err
	}
	fmt.Printf("Deleted market #%d\n", id)
	return nil
}

func (a *App) adminResolve(ctx context.Context, args []string) error {
	if len(args) < 2 {
		return fmt.Errorf("usage: admin resolve <id> <yes|no>")
	}
	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	outcome, err := parseOutcome(strings.ToLower(args[1]))
	if err != nil {
		return err
	}
	source, err := getSimpleText(a.reader, "Resolution source", os.Stdout)
	if err != nil {
		return err
	}

	m, err := a.admin.ResolveMarket(ctx, id, outcome, source)
	if err != nil {
		return err
	}
	fmt.Printf("Market #%d resolved %s, payouts issued\n", m.ID, outcomeLabel(outcome))
	return nil
}

// filterArgs parses "key value" pairs from the tail of an admin command,
// e.g. "user 7 type buy_yes".
func filterArgs(args []string) (map[string]string, error) {
	out := map[string]string{}
	if len(args)%2 != 0 {
		return nil, fmt.Errorf("filters come in pairs, e.g. user 7")
	}
	for i := 0; i < len(args); i += 2 {
		out[args[i]] = args[i+1]
	}
	return out, nil
}

func (a *App) adminTransactions(ctx context.Context, args []string) error {
	filters, err := filterArgs(args)
	if err != nil {
		return err
	}

	filter := api.TransactionFilter{Limit: adminPageSize}
	if v, ok := filters["user"]; ok {
		id, err := parseID(v)
		if err != nil {
			return err
		}
		filter.UserID = &id
	}
	if v, ok := filters["type"]; ok {
		filter.Type = v
	}

	txs, total, err := a.admin.ListTransactions(ctx, filter)
	if err != nil {
		return err
	}
	fmt.Printf("%-6s %-20s %-24s %12s %-10s\n", "ID", "WHEN", "USER", "AMOUNT", "TYPE")
	for _, tx := range txs {
		fmt.Printf("%-6d %-20s %-24s %12.2f %-10s\n",
			tx.ID, tx.CreatedAt.Local().Format("2006-01-02 15:04"), tx.Username, tx.Amount, tx.Type)
	}
	fmt.Printf("%d of %d transactions\n", len(txs), total)
	return nil
}

func (a *App) adminPositions(ctx context.Context, args []string) error {
	filters, err := filterArgs(args)
	if err != nil {
		return err
	}

	filter := api.PositionFilter{Limit: adminPageSize}
	if v, ok := filters["user"]; ok {
		id, err := parseID(v)
		if err != nil {
			return err
		}
		filter.UserID = &id
	}
	if v, ok := filters["market"]; ok {
		id, err := parseID(v)
		if err != nil {
			return err
		}
		filter.MarketID = &id
	}

	positions, total, err := a.admin.ListPositions(ctx, filter)
	if err != nil {
		return err
	}
	fmt.Printf("%-6s %-24s %-40s %10s %10s\n", "ID", "USER", "MARKET", "YES", "NO")
	for _, p := range positions {
		fmt.Printf("%-6d %-24s %-40s %10.2f %10.2f\n",
			p.ID, p.Username, truncate(p.MarketQuestion, 40), p.SharesYes, p.SharesNo)
	}
	fmt.Printf("%d of %d positions\n", len(positions), total)
	return nil
}

func (a *App) adminStats(ctx context.Context) error {
	stats, err := a.admin.Stats(ctx)
	if err != nil {
		return err
	}
	fmt.Printf("Users:        %d\n", stats.TotalUsers)
	fmt.Printf("Markets:      %d (%d active, %d resolved)\n", stats.TotalMarkets, stats.ActiveMarkets, stats.ResolvedMarkets)
	fmt.Printf("Transactions: %d, volume %.2f\n", stats.TotalTransactions, stats.TotalVolume)
	fmt.Printf("Positions:    %d\n", stats.TotalPositions)
	if len(stats.RecentTransactions) > 0 {
		fmt.Println("Recent:")
		for _, tx := range stats.RecentTransactions {
			fmt.Printf("  %s %-24s %12.2f %-10s\n",
				tx.CreatedAt.Local().Format("01-02 15:04"), tx.Username, tx.Amount, tx.Type)
		}
	}
	return nil
}
