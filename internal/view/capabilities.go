package view

// Notifier shows user-visible feedback.
type Notifier interface {
	Success(text string)
	Error(text string)
	// Notify shows a neutral message that is neither success nor failure.
	Notify(text string)
}

// Navigator moves the user to another route.
type Navigator interface {
	Navigate(route string)
}

// Confirmer asks the user a yes/no question.
type Confirmer interface {
	Confirm(prompt string) bool
}

// Params exposes the page's incoming parameters.
type Params interface {
	// RedirectTo returns the requested post-login destination, or "".
	RedirectTo() string
}
