package errors

import "fmt"

// messages renders the user-facing text for each dispatcher error kind.
var messages = map[ErrorCode]func(args ...interface{}) string{
	ErrInvalidActionsList: func(...interface{}) string {
		return "the actions list must be a list of strings"
	},
	ErrUnknownActionType: func(args ...interface{}) string {
		return fmt.Sprintf("the action %q is not part of the provided actions list", arg(args, 0))
	},
	ErrInvalidDispatch: func(...interface{}) string {
		return `"dispatch" must be a function`
	},
	ErrInvalidMeta: func(...interface{}) string {
		return "the action metadata must be an object"
	},
	ErrInvalidMiddlewareList: func(...interface{}) string {
		return "the middleware list must be a list of functions"
	},
	ErrNextReentered: func(args ...interface{}) string {
		return fmt.Sprintf("next() was called more than once by middleware %v", arg(args, 0))
	},
}

func arg(args []interface{}, i int) string {
	if i >= len(args) {
		return ""
	}
	return fmt.Sprint(args[i])
}

// Message renders the registered message for code. Codes without an entry
// render as the code itself.
func Message(code ErrorCode, args ...interface{}) string {
	render, ok := messages[code]
	if !ok {
		return string(code)
	}
	return render(args...)
}

// Of builds a HermesError whose message comes from the message table.
func Of(code ErrorCode, args ...interface{}) *HermesError {
	return New(code, Message(code, args...))
}
