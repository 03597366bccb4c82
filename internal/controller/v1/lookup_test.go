package v1_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookups(t *testing.T) {
	h := newHarness(t)

	resp := h.request(t, http.MethodGet, "/admin/api/activity-statuses?locale=fr", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, object{
		"_embedded": object{
			"activityStatuses": []any{
				object{"id": float64(1), "name": "Ouvert"},
				object{"id": float64(2), "name": "Terminé"},
			},
		},
		"total": float64(2),
	}, decode[object](t, resp))

	resp = h.request(t, http.MethodGet, "/admin/api/activity-priorities", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	priorities := decode[object](t, resp)["_embedded"].(object)["activityPriorities"].([]any)
	assert.Equal(t, "Low", priorities[0].(object)["name"])

	resp = h.request(t, http.MethodGet, "/admin/api/activity-types?locale=ja", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	types := decode[object](t, resp)["_embedded"].(object)["activityTypes"].([]any)
	assert.Equal(t, "Call", types[0].(object)["name"])
	assert.Equal(t, "会議", types[1].(object)["name"])
}
