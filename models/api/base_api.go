package apimodels

type Response struct {
	Status  string      `json:"status"`            // resultado: fail/success
	Message string      `json:"message,omitempty"` // mensaje de error
	Data    interface{} `json:"data,omitempty"`    // datos de la respuesta
}

func NewError(message string) Response {
	return Response{
		Status:  "fail",
		Message: message,
	}
}

func NewResponse(data interface{}) Response {
	return Response{
		Status: "success",
		Data:   data,
	}
}

// NewPartialResponse la operacion principal se aplico pero un efecto derivado fallo
func NewPartialResponse(data interface{}, message string) Response {
	return Response{
		Status:  "partial",
		Message: message,
		Data:    data,
	}
}
