package api

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestHandle_Envelopes(t *testing.T) {
	s := &Server{logger: zap.NewNop()}

	testCases := []struct {
		name    string
		fn      handlerFunc
		status  int
		message string
		success bool
	}{
		{
			name: "success",
			fn: func(w http.ResponseWriter, r *http.Request) error {
				respond(w, http.StatusOK, map[string]string{"k": "v"}, "done")
				return nil
			},
			status:  http.StatusOK,
			message: "done",
			success: true,
		},
		{
			name: "api error",
			fn: func(w http.ResponseWriter, r *http.Request) error {
				return Conflict("already there")
			},
			status:  http.StatusConflict,
			message: "already there",
		},
		{
			name: "wrapped api error",
			fn: func(w http.ResponseWriter, r *http.Request) error {
				return fmt.Errorf("context: %w", NotFound("missing"))
			},
			status:  http.StatusNotFound,
			message: "missing",
		},
		{
			name: "plain error",
			fn: func(w http.ResponseWriter, r *http.Request) error {
				return errors.New("database exploded")
			},
			status:  http.StatusInternalServerError,
			message: "Something went wrong",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			rr := httptest.NewRecorder()
			s.handle(tc.fn).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))

			require.Equal(t, tc.status, rr.Code)
			require.Equal(t, "application/json", rr.Header().Get("Content-Type"))
			env := decodeEnvelope(t, rr)
			require.Equal(t, tc.message, env.Message)
			require.Equal(t, tc.success, env.Success)
			if !tc.success {
				require.Equal(t, "null", string(env.Data))
			}
		})
	}
}

func TestError_UnwrapKeepsCause(t *testing.T) {
	cause := errors.New("boom")
	err := Internal("Something went wrong", cause)

	require.ErrorIs(t, err, cause)
	require.Contains(t, err.Error(), "boom")
	require.Equal(t, "400 bad", BadRequest("bad").Error())
}

func TestRecoverer(t *testing.T) {
	handler := Recoverer(zap.NewNop())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("unexpected")
	}))

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))

	require.Equal(t, http.StatusInternalServerError, rr.Code)
	require.Equal(t, "Something went wrong", decodeEnvelope(t, rr).Message)
}

func TestValidateRegister(t *testing.T) {
	require.False(t, validateRegister("Jane", "jane@example.com", "jane", "pw").hasErrors())

	errs := validateRegister(" ", "Jane <jane@example.com>", "ja ne", "")
	require.ElementsMatch(t, []string{
		"fullname is required",
		"email is invalid",
		"username must not contain spaces or slashes",
		"password is required",
	}, []string(errs))
}
