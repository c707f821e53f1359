package httperr

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type HTTPError struct {
	Code    string `json:"error_code"`
	Message string `json:"message"`
	Detail  string `json:"detail,omitempty"`
}

func Write(c *gin.Context, status int, code, message string) {
	c.JSON(status, HTTPError{
		Code:    code,
		Message: message,
	})
}

func BadRequest(c *gin.Context, code, message string) {
	Write(c, http.StatusBadRequest, code, message)
}

func Forbidden(c *gin.Context, code, message string) {
	Write(c, http.StatusForbidden, code, message)
}

func Internal(c *gin.Context, code, message string) {
	Write(c, http.StatusInternalServerError, code, message)
}

func Unauthorized(c *gin.Context, code, message string) {
	Write(c, http.StatusUnauthorized, code, message)
}

type businessMapping struct {
	status  int
	message string
}

var businessStatus = map[string]businessMapping{
	CodeNotFound:               {http.StatusNotFound, "Registro não encontrado."},
	CodeInvalidAvailability:    {http.StatusBadRequest, "Disponibilidade inválida."},
	CodeAvailabilityTooLarge:   {http.StatusBadRequest, "Disponibilidade excede o tamanho máximo."},
	CodeInvalidServiceType:     {http.StatusBadRequest, "Tipo de serviço inválido."},
	CodeServiceNotOffered:      {http.StatusBadRequest, "Serviço não oferecido pelo profissional."},
	CodeStartNotInFuture:       {http.StatusBadRequest, "O horário deve estar no futuro."},
	CodeTimeConflict:           {http.StatusConflict, "Conflito de horário."},
	CodeSelfBookingNotAllowed:  {http.StatusBadRequest, "Não é possível agendar consigo mesmo."},
	CodeCancellationNotAllowed: {http.StatusForbidden, "Cancelamento não permitido."},
	CodeInvalidTransition:      {http.StatusConflict, "Operação inválida para o status atual."},
	CodeTryAgain:               {http.StatusServiceUnavailable, "Tente novamente em instantes."},
	CodeInvalidDate:            {http.StatusBadRequest, "Data inválida."},
}

// FromError escreve a resposta adequada para err. Erros que não são de
// negócio viram 500 com o código informado em fallbackCode.
func FromError(c *gin.Context, err error, fallbackCode, fallbackMessage string) {
	be, ok := AsBusiness(err)
	if !ok {
		_ = c.Error(err)
		Internal(c, fallbackCode, fallbackMessage)
		return
	}

	m, known := businessStatus[be.Code]
	if !known {
		m = businessMapping{http.StatusBadRequest, "Requisição inválida."}
	}

	c.JSON(m.status, HTTPError{
		Code:    be.Code,
		Message: m.message,
		Detail:  be.Detail,
	})
}
