// cmd/client/cmd/init.go
package cmd

import (
	"linekeeper/cmd/client/cmd/line"
	"linekeeper/cmd/client/cmd/user"
)

func init() {
	rootCmd.AddCommand(line.LineCmd)
	line.LineCmd.AddCommand(line.ListCmd)
	line.LineCmd.AddCommand(line.GetCmd)
	line.LineCmd.AddCommand(line.DefaultCmd)
	line.LineCmd.AddCommand(line.AddCmd)
	line.LineCmd.AddCommand(line.UpdateCmd)
	line.LineCmd.AddCommand(line.DeleteCmd)

	rootCmd.AddCommand(user.UserCmd)
	user.UserCmd.AddCommand(user.ListCmd)
	user.UserCmd.AddCommand(user.GetCmd)
	user.UserCmd.AddCommand(user.AddCmd)
	user.UserCmd.AddCommand(user.UpdateCmd)
	user.UserCmd.AddCommand(user.DeleteCmd)

	rootCmd.AddCommand(rawCmd)
}
