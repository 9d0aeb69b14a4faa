package mutate_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	corev1 "k8s.io/api/core/v1"

	"github.com/imgremap/imgremap/pkg/mutate"
	"github.com/imgremap/imgremap/pkg/remap"
)

var testRules = remap.Rules{
	{Source: "quay.io", Destination: "quay.tencentcloudcr.com"},
	{Source: "gcr.io", Destination: "gcr.tencentcloudcr.com"},
	{Source: "docker.io", Destination: "dockerhub.tencentcloudcr.com"},
}

func TestPod(t *testing.T) {
	pod := &corev1.Pod{
		Spec: corev1.PodSpec{
			Containers: []corev1.Container{
				{Name: "app", Image: "quay.io/prometheus/node-exporter:v0.18.1"},
				{Name: "sidecar", Image: "alpine:3.10"},
			},
			InitContainers: []corev1.Container{
				{Name: "init", Image: "gcr.io/fake_project/fake_image"},
			},
			EphemeralContainers: []corev1.EphemeralContainer{
				{
					EphemeralContainerCommon: corev1.EphemeralContainerCommon{
						Name:  "debug",
						Image: "busybox",
					},
				},
			},
		},
	}

	changed := mutate.Pod(pod, testRules)
	assert.True(t, changed)
	assert.Equal(t, "quay.tencentcloudcr.com/prometheus/node-exporter:v0.18.1", pod.Spec.Containers[0].Image)
	assert.Equal(t, "dockerhub.tencentcloudcr.com/library/alpine:3.10", pod.Spec.Containers[1].Image)
	assert.Equal(t, "gcr.tencentcloudcr.com/fake_project/fake_image:latest", pod.Spec.InitContainers[0].Image)
	assert.Equal(t, "dockerhub.tencentcloudcr.com/library/busybox:latest", pod.Spec.EphemeralContainers[0].Image)
}

func TestPod_CanonicalizesWithoutMatch(t *testing.T) {
	// no rule applies, but the image is still written back canonicalized
	pod := &corev1.Pod{
		Spec: corev1.PodSpec{
			Containers: []corev1.Container{
				{Name: "app", Image: "registry.example.com/team/app"},
			},
		},
	}

	changed := mutate.Pod(pod, remap.Rules{{Source: "quay.io", Destination: "mirror.io"}})
	assert.True(t, changed)
	assert.Equal(t, "registry.example.com/team/app:latest", pod.Spec.Containers[0].Image)
}

func TestPod_NoChange(t *testing.T) {
	pod := &corev1.Pod{
		Spec: corev1.PodSpec{
			Containers: []corev1.Container{
				{Name: "app", Image: "registry.example.com/team/app:1.0"},
				{Name: "empty"},
			},
		},
	}

	changed := mutate.Pod(pod, nil)
	assert.False(t, changed)
	assert.Equal(t, "registry.example.com/team/app:1.0", pod.Spec.Containers[0].Image)
	assert.Empty(t, pod.Spec.Containers[1].Image)
}
