// AngelaMos | 2026
// selection_test.go

package client_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/carterperez-dev/asset-management/pkg/client"
)

var _ = Describe("Selection", func() {
	It("toggling twice restores the original set", func() {
		s := client.NewSelection("a")

		Expect(s.Toggle("b")).To(BeTrue())
		Expect(s.Toggle("b")).To(BeFalse())

		Expect(s.IDs()).To(Equal([]string{"a"}))
	})

	It("does not grow on duplicate ids", func() {
		s := client.NewSelection("a", "b")

		s.Toggle("b")
		s.Select("a")
		s.Select("a")

		Expect(s.IDs()).To(Equal([]string{"a"}))
		Expect(s.Len()).To(Equal(1))
	})

	It("keeps pick order", func() {
		s := client.NewSelection()
		s.Select("c")
		s.Select("a")
		s.Select("b")
		s.Deselect("a")

		Expect(s.IDs()).To(Equal([]string{"c", "b"}))
		Expect(s.Has("a")).To(BeFalse())
		Expect(s.Has("b")).To(BeTrue())
	})

	It("hands out copies", func() {
		s := client.NewSelection("a")
		ids := s.IDs()
		ids[0] = "mutated"

		Expect(s.Has("a")).To(BeTrue())
	})

	It("clears", func() {
		s := client.NewSelection("a", "b")
		s.Clear()
		Expect(s.Len()).To(BeZero())
		Expect(s.IDs()).To(BeEmpty())
	})
})
