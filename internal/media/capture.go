package media

// CaptureError classifies a failure of the browser recorder.
type CaptureError int

// Capture failure kinds.
const (
	CaptureUnknown CaptureError = iota
	CapturePermissionDenied
	CaptureNoDevice
)

// ParseCaptureError maps the DOMException name reported by the browser.
func ParseCaptureError(name string) CaptureError {
	switch name {
	case "NotAllowedError", "PermissionDeniedError":
		return CapturePermissionDenied
	case "NotFoundError", "DevicesNotFoundError":
		return CaptureNoDevice
	}

	return CaptureUnknown
}

func (e CaptureError) String() string {
	switch e {
	case CapturePermissionDenied:
		return "permission denied"
	case CaptureNoDevice:
		return "no device found"
	}

	return "unknown"
}

// Message is the text shown to the guest. detail is the browser message,
// only used for unknown failures.
func (e CaptureError) Message(detail string) string {
	switch e {
	case CapturePermissionDenied:
		return "Permissão negada. Por favor, permita o acesso à câmera e microfone " +
			"nas configurações do navegador para gravar sua mensagem."
	case CaptureNoDevice:
		return "Nenhum dispositivo de câmera ou microfone foi encontrado."
	}

	if detail == "" {
		detail = "Erro desconhecido"
	}

	return "Não foi possível acessar a câmera ou microfone: " + detail
}
