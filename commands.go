package honeycomb

// Commands is handed to modules and systems for mutating the App.
type Commands struct {
	app *App
}

func (cmd *Commands) AddResources(resources ...any) *Commands {
	cmd.app.addResources(resources...)
	return cmd
}

func (cmd *Commands) UseSystem(system systemScheduleBuilder) *Commands {
	cmd.app.UseSystem(system)
	return cmd
}

// Exit stops Run once the current frame completes.
func (cmd *Commands) Exit() {
	cmd.app.exit()
}

func (cmd *Commands) Frame() int {
	return cmd.app.frame
}

func (cmd *Commands) Logger() Logger {
	return cmd.app.Logger()
}
