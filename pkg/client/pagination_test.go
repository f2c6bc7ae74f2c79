// AngelaMos | 2026
// pagination_test.go

package client_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/carterperez-dev/asset-management/pkg/client"
)

var _ = Describe("Pager", func() {
	var p *client.Pager

	BeforeEach(func() {
		p = client.NewPager(10)
	})

	DescribeTable("total pages is ceil(count / size)",
		func(size, count, want int) {
			p = client.NewPager(size)
			p.SetCount(count)
			Expect(p.TotalPages()).To(Equal(want))
			Expect(p.Pages()).To(HaveLen(want))
			if want > 0 {
				Expect(p.Pages()[0]).To(Equal(1))
				Expect(p.Pages()[want-1]).To(Equal(want))
			}
		},
		Entry("empty", 10, 0, 0),
		Entry("one short of a page", 10, 9, 1),
		Entry("exact pages", 10, 20, 2),
		Entry("partial last page", 10, 25, 3),
		Entry("page size one", 1, 7, 7),
		Entry("oversized page", 100, 3, 1),
	)

	It("defaults and caps the page size", func() {
		Expect(client.NewPager(0).Size()).To(Equal(client.DefaultPageSize))
		Expect(client.NewPager(500).Size()).To(Equal(client.MaxPageSize))
	})

	Context("with 25 items", func() {
		BeforeEach(func() {
			p.SetCount(25)
		})

		It("lists pages 1 to 3", func() {
			Expect(p.Pages()).To(Equal([]int{1, 2, 3}))
		})

		It("stays on page 3 when asked for the next page", func() {
			Expect(p.JumpTo(3)).To(BeTrue())
			Expect(p.Next()).To(BeFalse())
			Expect(p.Page()).To(Equal(3))
		})

		It("stays on page 1 when asked for the previous page", func() {
			Expect(p.Prev()).To(BeFalse())
			Expect(p.Page()).To(Equal(1))
		})

		It("walks forward and back", func() {
			Expect(p.Next()).To(BeTrue())
			Expect(p.Next()).To(BeTrue())
			Expect(p.Page()).To(Equal(3))
			Expect(p.Prev()).To(BeTrue())
			Expect(p.Page()).To(Equal(2))
		})

		It("ignores jumps to the current page or out of range", func() {
			Expect(p.JumpTo(1)).To(BeFalse())
			Expect(p.JumpTo(0)).To(BeFalse())
			Expect(p.JumpTo(4)).To(BeFalse())
			Expect(p.JumpTo(-2)).To(BeFalse())
			Expect(p.Page()).To(Equal(1))
		})

		It("pulls the page back when the count shrinks", func() {
			p.JumpTo(3)
			Expect(p.SetCount(11)).To(BeTrue())
			Expect(p.Page()).To(Equal(2))

			Expect(p.SetCount(0)).To(BeTrue())
			Expect(p.Page()).To(Equal(1))
		})

		It("keeps the page when the count grows", func() {
			p.JumpTo(2)
			Expect(p.SetCount(90)).To(BeFalse())
			Expect(p.Page()).To(Equal(2))
		})

		It("resets to the first page", func() {
			p.JumpTo(3)
			Expect(p.Reset()).To(BeTrue())
			Expect(p.Page()).To(Equal(1))
			Expect(p.Reset()).To(BeFalse())
		})
	})

	It("treats an empty list as a single page for movement", func() {
		Expect(p.Page()).To(Equal(1))
		Expect(p.Next()).To(BeFalse())
		Expect(p.Prev()).To(BeFalse())
		Expect(p.Page()).To(Equal(1))
	})
})

var _ = Describe("AssetQuery", func() {
	It("drops filter and sort and returns to page 1 on a new search", func() {
		q := client.NewAssetQuery(10)
		q.Pager().SetCount(40)
		q.SetFilter(client.FilterAvailable)
		q.SetSort(client.SortQuantityDesc)
		q.Pager().JumpTo(3)

		q.Search("  laptop ")

		Expect(q.Text()).To(Equal("laptop"))
		Expect(q.Filter()).To(BeEmpty())
		Expect(q.Sort()).To(BeEmpty())
		Expect(q.Pager().Page()).To(Equal(1))
	})

	It("returns to page 1 when the filter changes", func() {
		q := client.NewAssetQuery(5)
		q.Pager().SetCount(20)
		q.Pager().JumpTo(4)

		q.SetFilter(client.Returnable)

		Expect(q.Filter()).To(Equal(client.Returnable))
		Expect(q.Pager().Page()).To(Equal(1))
	})
})
