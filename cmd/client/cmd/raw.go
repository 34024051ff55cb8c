package cmd

import (
	"fmt"
	"strings"

	"linekeeper/cmd/client/cmd/cmdutil"

	"github.com/spf13/cobra"
)

var rawCmd = &cobra.Command{
	Use:   "raw <строка протокола>",
	Short: "Отправить строку протокола как есть",
	Long: `Аргументы склеиваются через пробел и отправляются одной строкой,
например: raw GET_LINE_BY_ID 3f6c1a2e-...`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := cmdutil.ClientFrom(cmd.Context())
		if err != nil {
			return err
		}
		reply, err := c.Send(cmd.Context(), strings.Join(args, " "))
		if err != nil {
			return err
		}
		fmt.Fprintln(cmdutil.Out, reply)
		return nil
	},
}
