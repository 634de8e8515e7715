package main

import (
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/gatehouse-io/gatehouse/pkg/db"
	"github.com/gatehouse-io/gatehouse/pkg/grants"
	"github.com/gatehouse-io/gatehouse/pkg/model"
	gormstore "github.com/gatehouse-io/gatehouse/pkg/server/store/gorm"
)

// roleSeedCmd represents the role seed command
var roleSeedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Create the built-in roles and grants",
	Long: `Create the built-in "User" and "Admin" roles together with their grants.

The "User" role must exist before the first signup; the signup flow refuses
to create accounts without it. Seeding is idempotent: roles that already
exist are left untouched.

Example:
  gatehousectl role seed`,
	Run: func(cmd *cobra.Command, args []string) {
		if err := seedRoles(); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to seed roles: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	roleCmd.AddCommand(roleSeedCmd)
}

// seedGrants is the shipped permission policy. The "User" role can manage
// its own account, access records and profile; the "Admin" role additionally
// administers roles, resources and subsystems.
var seedGrants = map[string][]model.Grant{
	"User": {
		grantRow(grants.ResourceUser, grants.ReadAny, grants.CreateOwn, grants.UpdateOwn, grants.DeleteOwn),
		grantRow(grants.ResourceAccess, grants.ReadOwn, grants.CreateOwn, grants.UpdateOwn, grants.DeleteOwn),
		grantRow(grants.ResourceProfile, grants.ReadOwn, grants.CreateOwn, grants.UpdateOwn, grants.DeleteOwn),
	},
	"Admin": {
		grantRow(grants.ResourceUser, grants.ReadAny, grants.CreateOwn, grants.UpdateOwn, grants.DeleteOwn),
		grantRow(grants.ResourceAccess, grants.ReadOwn, grants.CreateOwn, grants.UpdateOwn, grants.DeleteOwn),
		grantRow(grants.ResourceProfile, grants.ReadOwn, grants.CreateOwn, grants.UpdateOwn, grants.DeleteOwn),
		grantRow(grants.ResourceResource, grants.ReadAny, grants.CreateAny, grants.UpdateAny, grants.DeleteAny),
		grantRow(grants.ResourceRole, grants.ReadAny, grants.CreateAny, grants.UpdateOwn, grants.DeleteOwn),
		grantRow(grants.ResourceSubSystem, grants.ReadAny, grants.CreateOwn, grants.UpdateOwn, grants.DeleteAny),
	},
}

func grantRow(resource string, actions ...grants.Action) model.Grant {
	strs := make([]string, len(actions))
	for i, a := range actions {
		strs[i] = string(a)
	}
	return model.Grant{Resource: resource, Actions: strs, Attributes: "*"}
}

func seedRoles() error {
	database, err := db.Connect(db.Config{})
	if err != nil {
		return err
	}
	roles := gormstore.NewRolesStore(database)

	for _, name := range []string{"User", "Admin"} {
		exists, err := roles.RoleExists(name)
		if err != nil {
			return fmt.Errorf("failed to check role %s: %w", name, err)
		}
		if exists {
			fmt.Printf("Role '%s' already exists, skipping\n", name)
			continue
		}

		role := &model.Role{
			ID:          uuid.NewString(),
			Name:        name,
			Description: fmt.Sprintf("Built-in %s role", name),
			Status:      model.RoleStatusActive,
		}
		for _, g := range seedGrants[name] {
			g.ID = uuid.NewString()
			g.RoleID = role.ID
			role.Grants = append(role.Grants, g)
		}

		if err := roles.CreateRole(role); err != nil {
			return fmt.Errorf("failed to create role %s: %w", name, err)
		}
		fmt.Printf("Created role '%s' with %d grants\n", name, len(role.Grants))
	}

	return nil
}
