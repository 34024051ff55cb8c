// cmd/client/cmd/user/user.go
package user

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"linekeeper/cmd/client/cmd/cmdutil"
	"linekeeper/internal/domain/user"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var UserCmd = &cobra.Command{
	Use:   "user",
	Short: "Работа с пользователями",
}

var (
	listFormat string
	userName   string
	password   string
	level      string
)

var ListCmd = &cobra.Command{
	Use:   "list",
	Short: "Список пользователей",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		c, err := cmdutil.ClientFrom(cmd.Context())
		if err != nil {
			return err
		}
		users, err := c.ListUsers(cmd.Context())
		if err != nil {
			return fmt.Errorf("ошибка получения списка пользователей: %w", err)
		}
		if listFormat == "json" {
			return cmdutil.JSON(users)
		}
		printTable(users)
		return nil
	},
}

var GetCmd = &cobra.Command{
	Use:   "get <id>",
	Short: "Получить пользователя по идентификатору",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := cmdutil.ClientFrom(cmd.Context())
		if err != nil {
			return err
		}
		id, err := cmdutil.ParseID(args[0])
		if err != nil {
			return err
		}
		u, found, err := c.GetUser(cmd.Context(), id)
		if err != nil {
			return err
		}
		if !found {
			cmdutil.Warn("Пользователь %s не найден", id)
			return nil
		}
		return cmdutil.JSON(u)
	},
}

var AddCmd = &cobra.Command{
	Use:   "add",
	Short: "Добавить пользователя",
	Long: `Добавляет пользователя. Если --password не указан, пароль
запрашивается с терминала без отображения.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		c, err := cmdutil.ClientFrom(cmd.Context())
		if err != nil {
			return err
		}
		lvl, err := user.ParseAuthLevel(level)
		if err != nil {
			return err
		}
		pass := password
		if pass == "" {
			if pass, err = readPassword(); err != nil {
				return err
			}
		}

		u := user.User{UserName: userName, Password: pass, AuthLevel: lvl}
		if err := c.AddUser(cmd.Context(), u); err != nil {
			return fmt.Errorf("ошибка добавления пользователя: %w", err)
		}
		cmdutil.Success("Пользователь %q добавлен", userName)
		return nil
	},
}

var UpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Изменить пользователя; меняются только указанные флаги",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := cmdutil.ClientFrom(cmd.Context())
		if err != nil {
			return err
		}
		id, err := cmdutil.ParseID(args[0])
		if err != nil {
			return err
		}
		u, found, err := c.GetUser(cmd.Context(), id)
		if err != nil {
			return err
		}
		if !found {
			return fmt.Errorf("пользователь %s не найден", id)
		}

		flags := cmd.Flags()
		if flags.Changed("name") {
			u.UserName = userName
		}
		if flags.Changed("password") {
			u.Password = password
		}
		if flags.Changed("level") {
			if u.AuthLevel, err = user.ParseAuthLevel(level); err != nil {
				return err
			}
		}

		if err := c.UpdateUser(cmd.Context(), u); err != nil {
			return fmt.Errorf("ошибка обновления пользователя: %w", err)
		}
		cmdutil.Success("Пользователь %s обновлен", id)
		return nil
	},
}

var DeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Удалить пользователя",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := cmdutil.ClientFrom(cmd.Context())
		if err != nil {
			return err
		}
		id, err := cmdutil.ParseID(args[0])
		if err != nil {
			return err
		}
		if err := c.DeleteUser(cmd.Context(), id); err != nil {
			return fmt.Errorf("ошибка удаления пользователя: %w", err)
		}
		cmdutil.Success("Пользователь %s удален", id)
		return nil
	},
}

func readPassword() (string, error) {
	fmt.Fprint(os.Stderr, "Введите пароль: ")
	pass, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", fmt.Errorf("ошибка чтения пароля: %w", err)
	}
	return string(pass), nil
}

func printTable(users []user.User) {
	if len(users) == 0 {
		cmdutil.Warn("Пользователи не найдены")
		return
	}

	w := tabwriter.NewWriter(cmdutil.Out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "ID\tUser\tLevel\t\n")
	for _, u := range users {
		fmt.Fprintf(w, "%s\t%s\t%s\t\n", u.ID, u.UserName, u.AuthLevel)
	}
	w.Flush()
}

func levelNames() string {
	names := make([]string, 0, len(user.Levels()))
	for _, l := range user.Levels() {
		names = append(names, l.String())
	}
	return strings.Join(names, ", ")
}

func init() {
	ListCmd.Flags().StringVarP(&listFormat, "format", "f", "table", "формат вывода (table, json)")

	for _, c := range []*cobra.Command{AddCmd, UpdateCmd} {
		c.Flags().StringVar(&userName, "name", "", "имя пользователя")
		c.Flags().StringVar(&password, "password", "", "пароль")
		c.Flags().StringVar(&level, "level", user.Operator.String(), "уровень доступа: "+levelNames())
	}
	_ = AddCmd.MarkFlagRequired("name")
}
