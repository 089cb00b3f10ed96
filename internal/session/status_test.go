package session_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/dotsim/internal/session"
)

var _ = DescribeTable("Status names",
	func(s session.Status, want string) {
		Expect(s.String()).To(Equal(want))
	},
	Entry("idle", session.StatusIdle, "idle"),
	Entry("loading", session.StatusLoading, "loading"),
	Entry("running", session.StatusRunning, "running"),
	Entry("stopped", session.StatusStopped, "stopped"),
	Entry("failed", session.StatusFailed, "failed"),
	Entry("out of range", session.Status(99), "unknown"),
)
