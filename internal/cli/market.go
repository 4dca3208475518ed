package cli

import (
	"context"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"predmarket-cli/internal/models"
	"predmarket-cli/internal/services"
)

// Markets lists the active markets with their current probabilities.
func (a *App) Markets(ctx context.Context) error {
	markets, err := a.markets.List(ctx)
	if err != nil {
		log.Printf("error: %v", err)
		return err
	}

	if len(markets) == 0 {
		fmt.Println("No active markets")
		return nil
	}

	fmt.Printf("%-5s %-50s %8s %8s %12s\n", "ID", "QUESTION", "YES", "NO", "ENDS")
	for _, m := range markets {
		fmt.Printf("%-5d %-50s %7.1f%% %7.1f%% %12s\n",
			m.ID, truncate(m.Question, 50), m.ProbYes*100, m.ProbNo*100, m.EndDate.Local().Format("2006-01-02"))
	}
	return nil
}

// marketID resolves the market id from command args, prompting when absent.
func (a *App) marketID(args []string) (int64, error) {
	if len(args) > 0 {
		return parseID(args[0])
	}
	s, err := getSimpleText(a.reader, "Enter market id", os.Stdout)
	if err != nil {
		return 0, err
	}
	return parseID(s)
}

// ShowMarket displays one market in full.
func (a *App) ShowMarket(ctx context.Context, args []string) error {
	id, err := a.marketID(args)
	if err != nil {
		fmt.Println(err.Error())
		return err
	}

	m, err := a.markets.Get(ctx, id)
	if err != nil {
		fmt.Println(flowMessage(err))
		return err
	}

	printMarket(m)
	return nil
}

// Buy runs the interactive purchase flow: pick an outcome, pick an
// amount, preview the estimated shares, confirm, submit. The estimate
// is a client-side approximation; the server's execution price is
// authoritative and is printed from the returned trade.
func (a *App) Buy(ctx context.Context, args []string) error {
	if !a.isLoggedIn() {
		fmt.Println("Please log in first")
		return nil
	}

	// A purchase needs the real server id, not the placeholder.
	if u := a.store.CurrentUser(); u == nil || !u.Resolved() {
		a.auth.RefreshSession(ctx)
		if u := a.store.CurrentUser(); u == nil || !u.Resolved() {
			fmt.Println("Profile not loaded yet, try again")
			return nil
		}
	}

	id, err := a.marketID(args)
	if err != nil {
		fmt.Println(err.Error())
		return err
	}

	m, err := a.markets.Get(ctx, id)
	if err != nil {
		fmt.Println(flowMessage(err))
		return err
	}
	if m.IsResolved {
		fmt.Println("Market is already resolved")
		return nil
	}

	outcomeStr, err := getSimpleText(a.reader, fmt.Sprintf("Buy which outcome? yes (%.1f%%) / no (%.1f%%)", m.ProbYes*100, m.ProbNo*100), os.Stdout)
	if err != nil {
		return err
	}
	outcome, err := parseOutcome(strings.ToLower(outcomeStr))
	if err != nil {
		fmt.Println(err.Error())
		return err
	}

	amountStr, err := getSimpleText(a.reader, "Amount to spend", os.Stdout)
	if err != nil {
		return err
	}
	amount, err := strconv.ParseFloat(amountStr, 64)
	if err != nil || amount <= 0 {
		fmt.Println("expected a positive amount")
		return fmt.Errorf("invalid amount %q", amountStr)
	}

	fmt.Printf("Estimated shares: ~%.2f %s (final price set at execution)\n",
		services.EstimateShares(m, outcome, amount), outcomeLabel(outcome))

	confirm, err := getSimpleText(a.reader, "Confirm purchase? (y/n)", os.Stdout)
	if err != nil {
		return err
	}
	if strings.ToLower(confirm) != "y" {
		fmt.Println("Cancelled")
		return nil
	}

	trade, err := a.markets.Buy(ctx, id, outcome, amount)
	if err != nil {
		fmt.Println(flowMessage(err))
		return err
	}

	fmt.Printf("Bought %.2f %s shares for %.2f (price %.3f). Market now %.1f%% YES.\n",
		trade.SharesReceived, outcomeLabel(trade.Outcome), trade.AmountSpent, trade.EffectivePrice, trade.NewProbYes*100)
	return nil
}

func printMarket(m *models.Market) {
	fmt.Printf("Market #%d: %s\n", m.ID, m.Question)
	if m.Description != "" {
		fmt.Println(m.Description)
	}
	fmt.Printf("YES %.1f%% / NO %.1f%%  (pools %.2f / %.2f)\n", m.ProbYes*100, m.ProbNo*100, m.PoolYes, m.PoolNo)
	fmt.Printf("Ends: %s\n", m.EndDate.Local().Format("2006-01-02 15:04"))
	if m.IsResolved {
		outcome := "NO"
		if m.Outcome != nil && *m.Outcome {
			outcome = "YES"
		}
		fmt.Printf("Resolved: %s", outcome)
		if m.ResolutionSource != nil && *m.ResolutionSource != "" {
			fmt.Printf(" (%s)", *m.ResolutionSource)
		}
		fmt.Println()
	}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n-3] + "..."
}
