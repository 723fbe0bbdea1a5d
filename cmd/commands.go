package cmd

func init() {
	rootCmd.AddCommand(
		NewVersionCommand(),
		NewUpdateCommand(),
	)
}
