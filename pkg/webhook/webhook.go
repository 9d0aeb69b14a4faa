// Package webhook serves the mutating-admission endpoint. It translates the
// AdmissionReview envelope into calls against the pure remap core; the core
// itself knows nothing about the admission protocol.
package webhook

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"
	jsonpatch "gomodules.xyz/jsonpatch/v2"
	admissionv1 "k8s.io/api/admission/v1"
	corev1 "k8s.io/api/core/v1"

	"github.com/imgremap/imgremap/pkg/mutate"
	"github.com/imgremap/imgremap/pkg/remap"
	"github.com/imgremap/imgremap/pkg/xlog"
)

// Mutator handles admission reviews for pods and rewrites their container
// images through an ordered remap rule list. Mutator is stateless apart
// from the rules and safe for concurrent requests.
type Mutator struct {
	rules remap.Rules
}

// NewMutator returns a Mutator applying the given rules.
func NewMutator(rules remap.Rules) *Mutator {
	return &Mutator{rules: rules}
}

// Router builds the gin engine serving the webhook endpoints.
func (m *Mutator) Router() *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())

	router.GET("/healthz", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})
	router.POST("/mutate", m.Mutate)
	return router
}

// Mutate is the gin handler for the mutating-admission endpoint.
func (m *Mutator) Mutate(c *gin.Context) {
	review := &admissionv1.AdmissionReview{}
	if err := c.ShouldBindJSON(review); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unable to decode admission review: " + err.Error()})
		return
	}
	if review.Request == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "admission review has no request"})
		return
	}

	response := m.review(c.Request.Context(), review.Request)
	c.JSON(http.StatusOK, &admissionv1.AdmissionReview{
		TypeMeta: review.TypeMeta,
		Response: response,
	})
}

// review evaluates a single admission request. It never denies: requests
// the policy cannot understand are accepted unchanged.
func (m *Mutator) review(ctx context.Context, req *admissionv1.AdmissionRequest) *admissionv1.AdmissionResponse {
	logger := xlog.C(ctx).With("uid", string(req.UID), "kind", req.Kind.Kind)
	logger.DebugContext(ctx, "starting validation")

	allowed := &admissionv1.AdmissionResponse{UID: req.UID, Allowed: true}

	pod := &corev1.Pod{}
	if err := json.Unmarshal(req.Object.Raw, pod); err != nil {
		// We were forwarded a request we cannot unmarshal or understand,
		// just accept it.
		logger.WarnContext(ctx, "cannot unmarshal resource as a pod, accepting unchanged", "error", err)
		return allowed
	}

	if !mutate.Pod(pod, m.rules) {
		return allowed
	}

	patch, err := m.patchFor(req.Object.Raw, pod)
	if err != nil {
		logger.ErrorContext(ctx, "unable to build mutation patch, accepting unchanged", "error", err)
		return allowed
	}

	logger.InfoContext(ctx, "pod images rewritten", "pod", pod.Name, "namespace", pod.Namespace)
	patchType := admissionv1.PatchTypeJSONPatch
	return &admissionv1.AdmissionResponse{
		UID:       req.UID,
		Allowed:   true,
		Patch:     patch,
		PatchType: &patchType,
	}
}

func (m *Mutator) patchFor(original []byte, mutated *corev1.Pod) ([]byte, error) {
	mutatedRaw, err := json.Marshal(mutated)
	if err != nil {
		return nil, err
	}
	ops, err := jsonpatch.CreatePatch(original, mutatedRaw)
	if err != nil {
		return nil, err
	}
	return json.Marshal(ops)
}
