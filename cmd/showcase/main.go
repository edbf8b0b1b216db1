// Command showcase walks the demo account variants through a short script:
// one account per category, a few deposits and withdrawals, an interest run,
// and the insurance and premium-bonus decorators.
package main

import (
	log "github.com/charmbracelet/log"
	"github.com/shopspring/decimal"
	"github.com/vmunteanu/mdbank/pkg/demo"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	store := demo.NewStore(decimal.NewFromInt(500), decimal.RequireFromString("0.02"))

	numbers := map[demo.Category]string{
		demo.StandardChecking: "DEMO-SC-001",
		demo.PremiumChecking:  "DEMO-PC-001",
		demo.StandardSavings:  "DEMO-SS-001",
		demo.PremiumSavings:   "DEMO-PS-001",
	}
	for category, number := range numbers {
		acc, err := store.Create(number, category)
		if err != nil {
			return err
		}
		acc.Deposit(decimal.NewFromInt(1000))
	}

	for category, number := range numbers {
		acc, err := store.Get(number)
		if err != nil {
			return err
		}
		err = acc.Withdraw(decimal.NewFromInt(200))
		log.Info("withdraw 200", "account", number, "category", category,
			"balance", acc.Balance(), "err", err)
	}

	insured, err := store.Decorate(numbers[demo.PremiumSavings], func(l demo.Ledger) demo.Ledger {
		return &demo.Insurance{Inner: l, Benefit: decimal.NewFromInt(10)}
	})
	if err != nil {
		return err
	}
	bonus, err := store.Decorate(numbers[demo.PremiumChecking], func(l demo.Ledger) demo.Ledger {
		return &demo.PremiumBonus{Inner: l}
	})
	if err != nil {
		return err
	}

	bonus.Deposit(decimal.NewFromInt(100))
	log.Info("deposit 100 with premium bonus", "account", bonus.Number(), "balance", bonus.Balance())

	for _, number := range numbers {
		acc, err := store.Get(number)
		if err != nil {
			return err
		}
		acc.ApplyInterest()
		log.Info("interest applied", "account", number, "balance", acc.Balance())
	}

	clone, err := store.CloneAccount(insured.Number(), "DEMO-PS-002")
	if err != nil {
		return err
	}
	log.Info("cloned insured account", "account", clone.Number(), "balance", clone.Balance())

	for _, number := range append(valuesOf(numbers), "DEMO-PS-002") {
		acc, err := store.Get(number)
		if err != nil {
			return err
		}
		for _, entry := range acc.History() {
			log.Debug("history", "account", number, "amount", entry.Amount, "note", entry.Note)
		}
	}
	return nil
}

func valuesOf(m map[demo.Category]string) []string {
	out := make([]string, 0, len(m))
	for _, v := range m {
		out = append(out, v)
	}
	return out
}
