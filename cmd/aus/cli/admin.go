package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/aus-site/aus-server/internal/model"
	"github.com/aus-site/aus-server/internal/service"
	"github.com/aus-site/aus-server/internal/store"
)

func newAdminCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "admin",
		Short: "Manage admin users",
		Long:  "Create and list the administrative users of the content panel.",
	}

	cmd.AddCommand(newAdminCreateCmd())
	cmd.AddCommand(newAdminListCmd())

	return cmd
}

// ---------- admin create ----------

func newAdminCreateCmd() *cobra.Command {
	var (
		email      string
		password   string
		superadmin bool
	)

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a new admin user",
		Example: `  aus admin create --email admin@example.com --superadmin
  aus admin create --email editor@example.com  # prompts for password`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAdminCreate(email, password, superadmin)
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "Admin email address (required)")
	cmd.Flags().StringVar(&password, "password", "", "Admin password (prompted if omitted)")
	cmd.Flags().BoolVar(&superadmin, "superadmin", false, "Grant the superadmin role")
	cmd.MarkFlagRequired("email")

	return cmd
}

func runAdminCreate(email, password string, superadmin bool) error {
	if !strings.Contains(email, "@") {
		return fmt.Errorf("invalid email address: %q", email)
	}

	// Prompt for password if not provided
	if password == "" {
		fmt.Print("Password: ")
		pwBytes, err := term.ReadPassword(int(os.Stdin.Fd()))
		if err != nil {
			return fmt.Errorf("failed to read password: %w", err)
		}
		fmt.Println()
		password = string(pwBytes)

		fmt.Print("Confirm password: ")
		confirmBytes, err := term.ReadPassword(int(os.Stdin.Fd()))
		if err != nil {
			return fmt.Errorf("failed to read confirmation: %w", err)
		}
		fmt.Println()

		if password != string(confirmBytes) {
			return fmt.Errorf("passwords do not match")
		}
	}

	if len(password) < 8 {
		return fmt.Errorf("password must be at least 8 characters")
	}

	st, err := store.NewStore(resolveDataDir())
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer st.Close()

	ctx := context.Background()
	if _, err := st.GetAdminByEmail(ctx, email); err == nil {
		return fmt.Errorf("admin %q already exists", email)
	}

	hash, err := service.HashPassword(password)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	admin := &model.Admin{
		Email:        email,
		PasswordHash: hash,
		Superadmin:   superadmin,
	}
	if err := st.CreateAdmin(ctx, admin); err != nil {
		return fmt.Errorf("create admin: %w", err)
	}

	role := "admin"
	if superadmin {
		role = "superadmin"
	}
	fmt.Printf("Created %s %q\n", role, email)
	return nil
}

// ---------- admin list ----------

func newAdminListCmd() *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List all admin users",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAdminList(jsonOutput)
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")

	return cmd
}

func runAdminList(jsonOutput bool) error {
	st, err := store.NewStore(resolveDataDir())
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer st.Close()

	admins, err := st.ListAdmins(context.Background())
	if err != nil {
		return fmt.Errorf("list admins: %w", err)
	}

	if jsonOutput {
		summaries := make([]model.AdminSummary, 0, len(admins))
		for _, a := range admins {
			summaries = append(summaries, model.AdminSummary{
				Email:      a.Email,
				Superadmin: a.Superadmin,
				CreatedAt:  a.CreatedAt,
			})
		}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(summaries)
	}

	if len(admins) == 0 {
		fmt.Println("No admin users configured. Use 'aus admin create' to create one.")
		return nil
	}

	fmt.Printf("%-30s %-12s %-20s\n", "EMAIL", "SUPERADMIN", "CREATED")
	fmt.Printf("%-30s %-12s %-20s\n", "-----", "----------", "-------")
	for _, a := range admins {
		super := "no"
		if a.Superadmin {
			super = "yes"
		}
		fmt.Printf("%-30s %-12s %-20s\n", a.Email, super, a.CreatedAt.Format("2006-01-02 15:04:05"))
	}

	return nil
}
