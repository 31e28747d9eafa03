// Package loader registers and loads the HTTP features of the service.
//
// Each feature implements the Feature interface:
//
//	type Feature interface {
//	    Name() string
//	    IsEnabled() bool
//	    Load(app fiber.Router) error
//	}
//
// The Manager keeps features in registration order and LoadAll loads the enabled
// ones, so features such as timeline, accounts or integrity stay isolated from each
// other and from cmd.
package loader
