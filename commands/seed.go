package commands

import (
	"context"
	"fmt"
	"log"

	"github.com/Kariqs/kartdaily-api/initializers"
	"github.com/Kariqs/kartdaily-api/models"
	"github.com/Kariqs/kartdaily-api/store"
	"github.com/Kariqs/kartdaily-api/utils"
	"github.com/spf13/cobra"
)

func seedCmd() *cobra.Command {
	var destroy bool

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Replace all data with sample users and products",
		Long: `Wipe orders, products and users, then import the sample data.

Examples:
  kartdaily seed
  kartdaily seed --destroy`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg := initializers.LoadEnv()

			db, err := initializers.ConnectToDB(ctx, cfg)
			if err != nil {
				return err
			}
			defer db.Close(context.Background())

			if err := initializers.SyncDatabase(ctx, db); err != nil {
				return err
			}

			if destroy {
				if err := destroyData(ctx, db); err != nil {
					return err
				}
				log.Println("Data destroyed!")
				return nil
			}

			if err := importData(ctx, db); err != nil {
				return err
			}
			log.Println("Data imported!")
			return nil
		},
	}

	cmd.Flags().BoolVarP(&destroy, "destroy", "d", false, "only delete existing data")
	return cmd
}

func destroyData(ctx context.Context, db store.Store) error {
	orders, err := db.Orders().FindAll(ctx)
	if err != nil {
		return fmt.Errorf("failed to list orders: %w", err)
	}
	owners := make(map[string]struct{}, len(orders))
	for _, order := range orders {
		owners[order.UserID] = struct{}{}
	}
	for userID := range owners {
		if _, err := db.Orders().DeleteByUser(ctx, userID); err != nil {
			return fmt.Errorf("failed to delete orders: %w", err)
		}
	}

	products, _, err := db.Products().Find(ctx, "", 0, 0)
	if err != nil {
		return fmt.Errorf("failed to list products: %w", err)
	}
	for _, product := range products {
		if err := db.Products().Delete(ctx, product.ID); err != nil {
			return fmt.Errorf("failed to delete product %s: %w", product.ID, err)
		}
	}

	users, err := db.Users().FindAll(ctx)
	if err != nil {
		return fmt.Errorf("failed to list users: %w", err)
	}
	for _, user := range users {
		if err := db.Users().Delete(ctx, user.ID); err != nil {
			return fmt.Errorf("failed to delete user %s: %w", user.ID, err)
		}
	}
	return nil
}

// importData replaces existing data. Sample products belong to the first
// sample user, who is the admin.
func importData(ctx context.Context, db store.Store) error {
	if err := destroyData(ctx, db); err != nil {
		return err
	}

	var adminID string
	for _, sample := range sampleUsers {
		hashedPassword, err := utils.HashPassword(sample.Password)
		if err != nil {
			return fmt.Errorf("failed to hash password: %w", err)
		}
		user := &models.User{Name: sample.Name, Email: sample.Email, Password: hashedPassword, IsAdmin: sample.IsAdmin}
		if err := db.Users().Create(ctx, user); err != nil {
			return fmt.Errorf("failed to create user %s: %w", sample.Email, err)
		}
		if adminID == "" {
			adminID = user.ID
		}
	}

	for _, sample := range sampleProducts {
		product := sample
		product.UserID = adminID
		product.Reviews = []models.Review{}
		if err := db.Products().Create(ctx, &product); err != nil {
			return fmt.Errorf("failed to create product %s: %w", sample.Name, err)
		}
	}
	return nil
}
