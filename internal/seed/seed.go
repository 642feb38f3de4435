package seed

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	authdomain "github.com/dillondm/Invoice-Managment-systems/internal/auth/domain"
	"github.com/dillondm/Invoice-Managment-systems/internal/auth/password"
	"gorm.io/gorm"
)

const (
	demoEmail    = "demo@invoicems.local"
	demoPassword = "demo-password"
	demoName     = "Demo User"
)

// EnsureDemoAccount seeds a demo sign-in for local evaluation. Production
// deployments skip this entirely.
func EnsureDemoAccount(db *gorm.DB) error {
	if db == nil {
		return errors.New("seed database handle is required")
	}

	node, err := snowflake.NewNode(1)
	if err != nil {
		return err
	}

	ctx := context.Background()
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var user authdomain.User
		err := tx.WithContext(ctx).
			Where("email = ?", strings.ToLower(demoEmail)).
			First(&user).Error
		if err == nil {
			return nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		hashed, err := password.Hash(demoPassword)
		if err != nil {
			return err
		}
		now := time.Now().UTC()
		user = authdomain.User{
			ID:           node.Generate(),
			Email:        strings.ToLower(demoEmail),
			Name:         demoName,
			PasswordHash: hashed,
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		return tx.WithContext(ctx).Create(&user).Error
	})
}
