// Package application contains use-case orchestration services.
package application

// Response is the outcome of a router call. Failures are reported in-band:
// Success is false and Msg and InlineMessage carry what the UI shows. An
// empty Msg means the caller asked for no popup message.
type Response struct {
	Success       bool
	Msg           string
	InlineMessage string
	Data          any
}

// Succeed builds a successful Response carrying data.
func Succeed(msg string, data any) Response {
	return Response{Success: true, Msg: msg, Data: data}
}

// Fail builds a failed Response.
func Fail(msg, inlineMessage string) Response {
	return Response{Success: false, Msg: msg, InlineMessage: inlineMessage}
}

// messageIf returns msg when wanted, otherwise the empty string.
func messageIf(wanted bool, msg string) string {
	if !wanted {
		return ""
	}
	return msg
}
