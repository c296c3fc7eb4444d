package root

import (
	"errors"
	"fmt"

	"github.com/kobstaw/kanty-grimoire-backend/internal/platform/database"
	"github.com/kobstaw/kanty-grimoire-backend/internal/profile"
	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

// findProfileByEmail 按邮箱查找用户资料
func findProfileByEmail(email string) (*profile.Profile, error) {
	var p profile.Profile
	if err := database.DB.Where("email = ?", email).First(&p).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("找不到邮箱为 %s 的用户", email)
		}
		return nil, err
	}
	return &p, nil
}

func newGrantAdminCmd() *cobra.Command {
	var revoke bool

	cmd := &cobra.Command{
		Use:   "grant-admin <email>",
		Short: "授予（或撤销）指定用户的管理员权限",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := setupDB(); err != nil {
				return err
			}

			p, err := findProfileByEmail(args[0])
			if err != nil {
				return err
			}

			isAdmin := !revoke
			if err := database.DB.Model(p).Update("is_admin", isAdmin).Error; err != nil {
				return err
			}

			if isAdmin {
				fmt.Printf("已将 %s (%s) 设为管理员。\n", p.Username, p.UUID)
			} else {
				fmt.Printf("已撤销 %s (%s) 的管理员权限。\n", p.Username, p.UUID)
			}
			fmt.Println("提示: 服务端的管理员缓存会在下一次缓存重建时生效，或重启服务立即生效。")
			return nil
		},
	}

	cmd.Flags().BoolVar(&revoke, "revoke", false, "撤销而不是授予管理员权限")
	return cmd
}

func newCheckAdminCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check-admin <email>",
		Short: "查看指定用户的管理员状态",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := setupDB(); err != nil {
				return err
			}

			p, err := findProfileByEmail(args[0])
			if err != nil {
				return err
			}

			fmt.Printf("用户: %s\n", p.Username)
			fmt.Printf("UUID: %s\n", p.UUID)
			fmt.Printf("邮箱: %s\n", p.Email)
			if p.IsAdmin {
				fmt.Println("管理员: 是")
			} else {
				fmt.Println("管理员: 否")
			}
			return nil
		},
	}
}
