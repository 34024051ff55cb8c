// cmd/client/cmd/line/line.go
package line

import (
	"fmt"
	"text/tabwriter"

	"linekeeper/cmd/client/cmd/cmdutil"
	"linekeeper/internal/domain/line"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var LineCmd = &cobra.Command{
	Use:   "line",
	Short: "Работа с линиями",
}

var (
	listFormat string
	name       string
	ipAddress  string
	port       int
	isDefault  bool
)

var ListCmd = &cobra.Command{
	Use:   "list",
	Short: "Список линий",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		c, err := cmdutil.ClientFrom(cmd.Context())
		if err != nil {
			return err
		}
		lines, err := c.ListLines(cmd.Context())
		if err != nil {
			return fmt.Errorf("ошибка получения списка линий: %w", err)
		}
		if listFormat == "json" {
			return cmdutil.JSON(lines)
		}
		printTable(lines)
		return nil
	},
}

var GetCmd = &cobra.Command{
	Use:   "get <id>",
	Short: "Получить линию по идентификатору",
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
		l, found, err := c.GetLine(cmd.Context(), id)
		if err != nil {
			return err
		}
		if !found {
			cmdutil.Warn("Линия %s не найдена", id)
			return nil
		}
		return cmdutil.JSON(l)
	},
}

var DefaultCmd = &cobra.Command{
	Use:   "default",
	Short: "Показать линию по умолчанию",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		c, err := cmdutil.ClientFrom(cmd.Context())
		if err != nil {
			return err
		}
		l, found, err := c.DefaultLine(cmd.Context())
		if err != nil {
			return err
		}
		if !found {
			cmdutil.Warn("Линий нет")
			return nil
		}
		return cmdutil.JSON(l)
	},
}

var AddCmd = &cobra.Command{
	Use:   "add",
	Short: "Добавить линию",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		c, err := cmdutil.ClientFrom(cmd.Context())
		if err != nil {
			return err
		}
		l := line.Line{Name: name, IPAddress: ipAddress, Port: port, IsDefault: isDefault}
		if err := c.AddLine(cmd.Context(), l); err != nil {
			return fmt.Errorf("ошибка добавления линии: %w", err)
		}
		cmdutil.Success("Линия %q добавлена", name)
		return nil
	},
}

var UpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Изменить линию; меняются только указанные флаги",
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
		l, found, err := c.GetLine(cmd.Context(), id)
		if err != nil {
			return err
		}
		if !found {
			return fmt.Errorf("линия %s не найдена", id)
		}

		flags := cmd.Flags()
		if flags.Changed("name") {
			l.Name = name
		}
		if flags.Changed("ip") {
			l.IPAddress = ipAddress
		}
		if flags.Changed("port") {
			l.Port = port
		}
		if flags.Changed("default") {
			l.IsDefault = isDefault
		}

		if err := c.UpdateLine(cmd.Context(), l); err != nil {
			return fmt.Errorf("ошибка обновления линии: %w", err)
		}
		cmdutil.Success("Линия %s обновлена", id)
		return nil
	},
}

var DeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Удалить линию",
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
		if err := c.DeleteLine(cmd.Context(), id); err != nil {
			return fmt.Errorf("ошибка удаления линии: %w", err)
		}
		cmdutil.Success("Линия %s удалена", id)
		return nil
	},
}

func printTable(lines []line.Line) {
	if len(lines) == 0 {
		cmdutil.Warn("Линии не найдены")
		return
	}

	w := tabwriter.NewWriter(cmdutil.Out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "ID\tName\tAddress\tDefault\t\n")
	for _, l := range lines {
		mark := ""
		if l.IsDefault {
			mark = color.GreenString("*")
		}
		fmt.Fprintf(w, "%s\t%s\t%s:%d\t%s\t\n", l.ID, l.Name, l.IPAddress, l.Port, mark)
	}
	w.Flush()
}

func init() {
	ListCmd.Flags().StringVarP(&listFormat, "format", "f", "table", "формат вывода (table, json)")

	for _, c := range []*cobra.Command{AddCmd, UpdateCmd} {
		c.Flags().StringVar(&name, "name", "", "название линии")
		c.Flags().StringVar(&ipAddress, "ip", "", "IP адрес")
		c.Flags().IntVar(&port, "port", 0, "номер порта")
		c.Flags().BoolVar(&isDefault, "default", false, "сделать линией по умолчанию")
	}
	_ = AddCmd.MarkFlagRequired("name")
}
