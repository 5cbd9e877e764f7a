package errors

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/suite"
)

type ErrorResponseTestSuite struct {
	suite.Suite
}

func TestErrorResponseSuite(t *testing.T) {
	suite.Run(t, new(ErrorResponseTestSuite))
}

func (s *ErrorResponseTestSuite) TestNewErrorResponse() {
	response := NewErrorResponse(RuleNotFound, "trace-123")

	s.Equal("RULE_001", response.Error.Code)
	s.Equal("Mapping rule not found", response.Error.Message)
	s.Equal("trace-123", response.Error.TraceID)
	s.Empty(response.Error.Details)
}

func (s *ErrorResponseTestSuite) TestNewErrorResponse_WithOptions() {
	response := NewErrorResponse(ValidationGeneral, "trace-123",
		WithMessage("match text is blank"),
		WithDetails("matchText: is required"),
	)

	s.Equal("match text is blank", response.Error.Message)
	s.Equal([]string{"matchText: is required"}, response.Error.Details)
}

func (s *ErrorResponseTestSuite) TestWrapSystemError_HidesInternalDetails() {
	internal := http.ErrHandlerTimeout

	response, returned := WrapSystemError(internal, "trace-456")

	s.Equal(string(SystemInternalError), response.Error.Code)
	s.NotContains(response.Error.Message, internal.Error())
	s.Equal(internal, returned)
}

func (s *ErrorResponseTestSuite) TestGetHTTPStatus() {
	testCases := []struct {
		code     ErrorCode
		expected int
	}{
		{ValidationGeneral, http.StatusBadRequest},
		{RuleTextRequired, http.StatusBadRequest},
		{TransactionNotOwned, http.StatusForbidden},
		{RuleNotFound, http.StatusNotFound},
		{CategoryNotFound, http.StatusNotFound},
		{CategoryUnresolvable, http.StatusUnprocessableEntity},
		{SuggestionNotFound, http.StatusUnprocessableEntity},
		{SystemRateLimitExceeded, http.StatusTooManyRequests},
		{SystemServiceUnavailable, http.StatusServiceUnavailable},
		{SystemInternalError, http.StatusInternalServerError},
		{SystemPartialWrite, http.StatusInternalServerError},
	}

	for _, tc := range testCases {
		s.Equal(tc.expected, GetHTTPStatus(tc.code), "code %s", tc.code)
	}
}

func (s *ErrorResponseTestSuite) TestGetErrorMessage_UnknownCode() {
	s.Equal("An unexpected error occurred", GetErrorMessage(ErrorCode("NOPE_999")))
	s.False(IsValidErrorCode(ErrorCode("NOPE_999")))
	s.True(IsValidErrorCode(RuleNotFound))
}
