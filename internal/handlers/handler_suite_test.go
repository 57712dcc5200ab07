package handlers

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/suite"
)

const testTraceID = "trace-test"

// handlerSuite carries what every handler suite needs: an echo instance
// with the real validator and an authenticated caller
type handlerSuite struct {
	suite.Suite
	ctrl   *gomock.Controller
	e      *echo.Echo
	userID uuid.UUID
}

func (s *handlerSuite) setup() {
	s.ctrl = gomock.NewController(s.T())
	s.e = echo.New()
	s.e.Validator = NewValidator()
	s.e.IPExtractor = echo.ExtractIPFromXFFHeader()
	s.userID = uuid.New()
}

func (s *handlerSuite) TearDownTest() {
	s.ctrl.Finish()
}

// request builds an authenticated context. A string body is sent as is,
// anything else is JSON encoded.
func (s *handlerSuite) request(method, target string, body any) (echo.Context, *httptest.ResponseRecorder) {
	var reader *bytes.Reader
	switch b := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case string:
		reader = bytes.NewReader([]byte(b))
	default:
		raw, err := json.Marshal(b)
		s.Require().NoError(err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, target, reader)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := s.e.NewContext(req, rec)
	c.Set("user_id", s.userID)
	c.Set(TraceIDContextKey, testTraceID)
	return c, rec
}

// withID sets the :id path parameter
func withID(c echo.Context, id string) echo.Context {
	c.SetParamNames("id")
	c.SetParamValues(id)
	return c
}

func (s *handlerSuite) errorBody(rec *httptest.ResponseRecorder) ErrorResponse {
	var resp ErrorResponse
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &resp))
	s.Equal(testTraceID, resp.Error.TraceID)
	return resp
}

func (s *handlerSuite) assertError(rec *httptest.ResponseRecorder, status int, code string) ErrorResponse {
	s.Equal(status, rec.Code, rec.Body.String())
	resp := s.errorBody(rec)
	s.Equal(code, resp.Error.Code)
	return resp
}

// data decodes the data member of a success response into v
func (s *handlerSuite) data(rec *httptest.ResponseRecorder, v any) {
	var envelope struct {
		Data json.RawMessage `json:"data"`
	}
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &envelope))
	s.Require().NoError(json.Unmarshal(envelope.Data, v))
}
