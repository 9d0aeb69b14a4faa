// Package mutate walks a pod specification and rewrites container images
// through a remap rule list. Each container is handled independently, so
// callers may mutate distinct pods concurrently without coordination.
package mutate

import (
	corev1 "k8s.io/api/core/v1"

	"github.com/imgremap/imgremap/pkg/remap"
)

// Pod rewrites the image of every container, init container and ephemeral
// container in place and reports whether anything changed. Even when no
// rule matches, images are rewritten to their canonical form.
func Pod(pod *corev1.Pod, rules remap.Rules) bool {
	changed := Containers(pod.Spec.Containers, rules)
	if Containers(pod.Spec.InitContainers, rules) {
		changed = true
	}
	if EphemeralContainers(pod.Spec.EphemeralContainers, rules) {
		changed = true
	}
	return changed
}

// Containers rewrites the images of a container list in place.
func Containers(containers []corev1.Container, rules remap.Rules) bool {
	changed := false
	for i := range containers {
		// an empty image is left alone, the apiserver rejects it anyway
		if containers[i].Image == "" {
			continue
		}
		if rewritten := rules.Rewrite(containers[i].Image); rewritten != containers[i].Image {
			containers[i].Image = rewritten
			changed = true
		}
	}
	return changed
}

// EphemeralContainers rewrites the images of an ephemeral container list in
// place.
func EphemeralContainers(containers []corev1.EphemeralContainer, rules remap.Rules) bool {
	changed := false
	for i := range containers {
		if containers[i].Image == "" {
			continue
		}
		if rewritten := rules.Rewrite(containers[i].Image); rewritten != containers[i].Image {
			containers[i].Image = rewritten
			changed = true
		}
	}
	return changed
}
