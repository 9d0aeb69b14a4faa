package webhook_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	admissionv1 "k8s.io/api/admission/v1"
	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/runtime"
	"k8s.io/apimachinery/pkg/types"

	"github.com/imgremap/imgremap/pkg/remap"
	"github.com/imgremap/imgremap/pkg/webhook"
)

var testRules = remap.Rules{
	{Source: "quay.io", Destination: "quay.mirror.example.com"},
	{Source: "docker.io", Destination: "hub.mirror.example.com"},
}

func newReviewBody(t *testing.T, obj any) *bytes.Buffer {
	t.Helper()
	raw, err := json.Marshal(obj)
	require.NoError(t, err)

	review := &admissionv1.AdmissionReview{
		TypeMeta: metav1.TypeMeta{
			APIVersion: "admission.k8s.io/v1",
			Kind:       "AdmissionReview",
		},
		Request: &admissionv1.AdmissionRequest{
			UID:    types.UID("test-uid"),
			Kind:   metav1.GroupVersionKind{Version: "v1", Kind: "Pod"},
			Object: runtime.RawExtension{Raw: raw},
		},
	}
	body, err := json.Marshal(review)
	require.NoError(t, err)
	return bytes.NewBuffer(body)
}

func postMutate(t *testing.T, body *bytes.Buffer) *admissionv1.AdmissionReview {
	t.Helper()
	router := webhook.NewMutator(testRules).Router()

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/mutate", body)
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	review := &admissionv1.AdmissionReview{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), review))
	require.NotNil(t, review.Response)
	return review
}

func TestMutate_RewritesPodImages(t *testing.T) {
	pod := &corev1.Pod{
		ObjectMeta: metav1.ObjectMeta{Name: "web", Namespace: "default"},
		Spec: corev1.PodSpec{
			Containers: []corev1.Container{
				{Name: "app", Image: "quay.io/prometheus/node-exporter:v0.18.1"},
			},
			InitContainers: []corev1.Container{
				{Name: "init", Image: "alpine:3.10"},
			},
		},
	}

	review := postMutate(t, newReviewBody(t, pod))
	resp := review.Response
	assert.True(t, resp.Allowed)
	assert.Equal(t, "test-uid", string(resp.UID))
	require.NotNil(t, resp.PatchType)
	assert.Equal(t, admissionv1.PatchTypeJSONPatch, *resp.PatchType)

	var ops []map[string]any
	require.NoError(t, json.Unmarshal(resp.Patch, &ops))
	values := map[string]string{}
	for _, op := range ops {
		assert.Equal(t, "replace", op["op"])
		values[op["path"].(string)] = op["value"].(string)
	}
	assert.Equal(t, map[string]string{
		"/spec/containers/0/image":     "quay.mirror.example.com/prometheus/node-exporter:v0.18.1",
		"/spec/initContainers/0/image": "hub.mirror.example.com/library/alpine:3.10",
	}, values)
}

func TestMutate_NoMatchingRule(t *testing.T) {
	pod := &corev1.Pod{
		ObjectMeta: metav1.ObjectMeta{Name: "web"},
		Spec: corev1.PodSpec{
			Containers: []corev1.Container{
				// already canonical and outside the mapping
				{Name: "app", Image: "registry.example.com/team/app:1.0"},
			},
		},
	}

	review := postMutate(t, newReviewBody(t, pod))
	assert.True(t, review.Response.Allowed)
	assert.Nil(t, review.Response.Patch)
}

func TestMutate_NonPodObjectAccepted(t *testing.T) {
	// a resource the policy does not understand is accepted unchanged
	body := newReviewBody(t, map[string]any{"spec": "not a pod"})
	review := postMutate(t, body)
	assert.True(t, review.Response.Allowed)
	assert.Nil(t, review.Response.Patch)
}

func TestMutate_BadEnvelope(t *testing.T) {
	router := webhook.NewMutator(testRules).Router()

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/mutate", bytes.NewBufferString("{broken"))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodPost, "/mutate", bytes.NewBufferString("{}"))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHealthz(t *testing.T) {
	router := webhook.NewMutator(nil).Router()

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "OK", rec.Body.String())
}
