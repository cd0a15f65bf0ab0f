package apierror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"task-tracker-api/internal/service"
	"task-tracker-api/internal/validation"
	"task-tracker-api/internal/workerpool"
)

func TestNormalize_Validation(t *testing.T) {
	_, err := validation.ValidateCreate(validation.Payload{})
	require.Error(t, err)

	status, env := Normalize(err)

	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, LabelValidation, env.Error)
	assert.Equal(t, []validation.Violation{
		{Field: validation.FieldTitle, Message: validation.MsgTitleRequired},
	}, env.Details)
	assert.Empty(t, env.Message)
}

func TestNormalize_NotFound(t *testing.T) {
	status, env := Normalize(service.ErrNotFound)

	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, Envelope{Error: LabelNotFound}, env)
}

func TestNormalize_Unavailable(t *testing.T) {
	for _, err := range []error{workerpool.ErrPoolFull, workerpool.ErrPoolClosed} {
		status, env := Normalize(err)

		assert.Equal(t, http.StatusServiceUnavailable, status)
		assert.Equal(t, Envelope{Error: LabelUnavailable}, env)
	}
}

func TestNormalize_UnexpectedHidesDetail(t *testing.T) {
	err := fmt.Errorf("list tasks: %w", errors.New("dial tcp 10.0.0.7:27017: connection refused"))

	status, env := Normalize(err)

	assert.Equal(t, http.StatusInternalServerError, status)
	assert.Equal(t, Envelope{Error: LabelServerError}, env)
}

func TestNormalize_InvalidInputIsUnexpected(t *testing.T) {
	status, _ := Normalize(service.ErrInvalidInput)

	assert.Equal(t, http.StatusInternalServerError, status)
}

func TestClassify_Wrapped(t *testing.T) {
	assert.Equal(t, KindNotFound, Classify(fmt.Errorf("toggle: %w", service.ErrNotFound)))
	assert.Equal(t, KindUnexpected, Classify(nil))
	assert.Equal(t, "not_found", KindNotFound.String())
}

func TestRouteNotFound(t *testing.T) {
	status, env := RouteNotFound(http.MethodGet, "/api/nope")

	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, Envelope{Error: LabelRouteNotFound, Message: "Cannot GET /api/nope"}, env)
}
