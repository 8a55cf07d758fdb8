package app

// Extension adds behavior to an App. Install is called once, when the
// extension is passed to App.Use.
type Extension interface {
	Install(a *App) error
}

// ExtensionFunc adapts a function to Extension.
type ExtensionFunc func(a *App) error

func (f ExtensionFunc) Install(a *App) error {
	return f(a)
}

// ErrorReporter is implemented by extensions that want to see errors
// passed to App.HandleError.
type ErrorReporter interface {
	OnError(err error)
}
