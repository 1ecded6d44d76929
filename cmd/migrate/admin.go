package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/ManuelReschke/RetailFox/app/models"
	"github.com/ManuelReschke/RetailFox/app/repository"
	"github.com/ManuelReschke/RetailFox/internal/pkg/billing"
	"github.com/ManuelReschke/RetailFox/internal/pkg/database"
	"github.com/ManuelReschke/RetailFox/internal/pkg/entitlements"
)

var (
	storeName     string
	storeTimeZone string
	customerEmail string
)

var storeCmd = &cobra.Command{
	Use:   "store",
	Short: "Store profile commands",
}

var storeCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a store on the free plan",
	Example: `  retailfox-admin store create --name "Main Street Mart" --tz Asia/Kolkata`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if storeName == "" {
			return fmt.Errorf("--name is required")
		}
		if storeTimeZone != "" {
			if _, err := time.LoadLocation(storeTimeZone); err != nil {
				return fmt.Errorf("invalid time zone %q: %w", storeTimeZone, err)
			}
		}
		database.ConnectDatabase()

		store := models.NewStoreProfile(storeName, storeTimeZone)
		repo := repository.NewStoreRepository(database.GetDB())
		if err := repo.Create(commandContext(cmd), store); err != nil {
			return fmt.Errorf("create store: %w", err)
		}
		cmd.Printf("store %s created on plan %s\n", store.ID, store.Plan)
		return nil
	},
}

var billingCmd = &cobra.Command{
	Use:   "billing",
	Short: "Billing correlation commands",
}

var billingLinkCustomerCmd = &cobra.Command{
	Use:   "link-customer <store-id> <stripe-customer-id>",
	Short: "Link a Stripe customer to a store",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		database.ConnectDatabase()
		if err := billing.NewRepository(database.GetDB()).LinkCustomer(commandContext(cmd), args[0], args[1], customerEmail); err != nil {
			return fmt.Errorf("link customer: %w", err)
		}
		cmd.Printf("customer %s linked to store %s\n", args[1], args[0])
		return nil
	},
}

var billingMapPriceCmd = &cobra.Command{
	Use:   "map-price <stripe-price-id> <plan>",
	Short: "Map a Stripe price to a plan",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, ok := entitlements.ParsePlan(args[1]); !ok {
			return fmt.Errorf("unknown plan %q, expected one of %v", args[1], entitlements.Plans())
		}
		database.ConnectDatabase()
		if err := billing.NewRepository(database.GetDB()).MapPrice(commandContext(cmd), args[0], args[1]); err != nil {
			return fmt.Errorf("map price: %w", err)
		}
		cmd.Printf("price %s mapped to plan %s\n", args[0], args[1])
		return nil
	},
}

func init() {
	storeCreateCmd.Flags().StringVar(&storeName, "name", "", "store name")
	storeCreateCmd.Flags().StringVar(&storeTimeZone, "tz", "", "IANA time zone for usage windows")
	storeCmd.AddCommand(storeCreateCmd)

	billingLinkCustomerCmd.Flags().StringVar(&customerEmail, "email", "", "billing contact email")
	billingCmd.AddCommand(billingLinkCustomerCmd, billingMapPriceCmd)
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
