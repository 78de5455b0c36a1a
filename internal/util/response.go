package util

type Envelope map[string]any

// Error is the failure body every handler returns.
func Error(message string) Envelope {
	return Envelope{"success": false, "message": message}
}

func Message(message string) Envelope {
	return Envelope{"message": message}
}

func Data(key string, value any) Envelope {
	return Envelope{key: value}
}

// Success wraps a payload under "data" next to a success flag.
func Success(data any) Envelope {
	return Envelope{"success": true, "data": data}
}

func (e Envelope) With(key string, value any) Envelope {
	e[key] = value
	return e
}
