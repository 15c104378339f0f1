// Copyright 2025 The Rivaas Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

//go:build integration

package urlmapping_test

import (
	"fmt"
	"sync"
	"sync/atomic"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"rivaas.dev/urlmapping"
	"rivaas.dev/urlmapping/constraint"
)

var _ = Describe("URL Mapping Stress Tests", func() {
	Describe("Concurrent mapping registration", func() {
		It("should register mappings concurrently without panics", func() {
			table := urlmapping.MustNewTable()

			var wg sync.WaitGroup
			mappingCount := 100

			for i := range mappingCount {
				wg.Add(1)
				go func(id int) {
					defer wg.Done()
					defer GinkgoRecover()
					m := urlmapping.MustNew(fmt.Sprintf("/concurrent/%d", id),
						urlmapping.WithController("stress"),
					)
					Expect(table.Add(m)).To(Succeed())
				}(i)
			}

			wg.Wait()

			Expect(table.Len()).To(Equal(mappingCount))
			Expect(table.Match("/concurrent/0")).NotTo(BeNil())
		})
	})

	Describe("Large mapping tables", func() {
		It("should resolve static paths with a thousand mappings registered", func() {
			table := urlmapping.MustNewTable()

			batch := make([]*urlmapping.Mapping, 0, 1000)
			for i := range 1000 {
				batch = append(batch, urlmapping.MustNew(
					fmt.Sprintf("/section%d/page%d", i%10, i),
					urlmapping.WithController(fmt.Sprintf("c%d", i)),
				))
			}
			Expect(table.Add(batch...)).To(Succeed())
			Expect(table.Len()).To(Equal(1000))

			// Spot-check resolution across the table.
			for i := 0; i < 1000; i += 97 {
				path := fmt.Sprintf("/section%d/page%d", i%10, i)
				info := table.Match(path)
				Expect(info).NotTo(BeNil(), "path %q should resolve", path)
				Expect(info.Controller).To(Equal(fmt.Sprintf("c%d", i)))
			}

			// Paths outside the table still miss.
			Expect(table.Match("/section0/page1000")).To(BeNil())
		})

		It("should keep dynamic fallthrough correct alongside many static mappings", func() {
			table := urlmapping.MustNewTable()

			for i := range 500 {
				Expect(table.Add(urlmapping.MustNew(
					fmt.Sprintf("/static/%d", i),
					urlmapping.WithController("static"),
				))).To(Succeed())
			}
			Expect(table.Add(urlmapping.MustNew("/static/(*)",
				urlmapping.WithController("dynamic"),
				urlmapping.WithConstraints(constraint.New("name")),
			))).To(Succeed())

			// Indexed static paths win.
			info := table.Match("/static/250")
			Expect(info).NotTo(BeNil())
			Expect(info.Controller).To(Equal("static"))

			// Everything else falls through to the capture mapping.
			info = table.Match("/static/other")
			Expect(info).NotTo(BeNil())
			Expect(info.Controller).To(Equal("dynamic"))
			Expect(info.Params).To(HaveKeyWithValue("name", "other"))
		})
	})

	Describe("High lookup load", func() {
		It("should handle high concurrent load without dropped matches", func() {
			table := urlmapping.MustNewTable()

			for i := range 100 {
				Expect(table.Add(urlmapping.MustNew(
					fmt.Sprintf("/api/resource%d/(*)", i),
					urlmapping.WithController(fmt.Sprintf("resource%d", i)),
					urlmapping.WithConstraints(constraint.New("id", constraint.Int())),
				))).To(Succeed())
			}

			var wg sync.WaitGroup
			var successCount atomic.Int64
			concurrency := 200
			lookupsPerRoutine := 100

			for i := range concurrency {
				wg.Add(1)
				go func(id int) {
					defer wg.Done()
					for j := range lookupsPerRoutine {
						path := fmt.Sprintf("/api/resource%d/123", (id+j)%10)
						if table.Match(path) != nil {
							successCount.Add(1)
						}
					}
				}(i)
			}

			wg.Wait()

			Expect(successCount.Load()).To(Equal(int64(concurrency * lookupsPerRoutine)))
		})

		It("should sustain repeated lookups and reverse builds without leaks", func() {
			table := urlmapping.MustNewTable()
			m := urlmapping.MustNew("/orders/(*)",
				urlmapping.WithController("order"),
				urlmapping.WithConstraints(constraint.New("id", constraint.Int())),
			)
			Expect(table.Add(m)).To(Succeed())

			// Mainly verifies no panics and no state carried between calls.
			for i := range 10000 {
				info := table.Match("/orders/42")
				Expect(info).NotTo(BeNil())
				Expect(info.Params).To(HaveKeyWithValue("id", "42"))

				u, err := m.CreateURL(map[string]any{"id": i}, "UTF-8")
				Expect(err).NotTo(HaveOccurred())
				Expect(u).To(Equal(fmt.Sprintf("/orders/%d", i)))
			}
		})
	})

	Describe("Precedence under incremental registration", func() {
		It("should order mappings by specificity regardless of registration order", func() {
			table := urlmapping.MustNewTable()

			// Least specific first; the table must still prefer the static
			// mapping once it arrives.
			Expect(table.Add(urlmapping.MustNew("/(**)",
				urlmapping.WithController("catchall"),
				urlmapping.WithConstraints(constraint.New("path")),
			))).To(Succeed())

			info := table.Match("/shop/cart")
			Expect(info).NotTo(BeNil())
			Expect(info.Controller).To(Equal("catchall"))

			Expect(table.Add(urlmapping.MustNew("/shop/(*)",
				urlmapping.WithController("shop"),
				urlmapping.WithConstraints(constraint.New("section")),
			))).To(Succeed())

			info = table.Match("/shop/cart")
			Expect(info).NotTo(BeNil())
			Expect(info.Controller).To(Equal("shop"))

			Expect(table.Add(urlmapping.MustNew("/shop/cart",
				urlmapping.WithController("cart"),
			))).To(Succeed())

			info = table.Match("/shop/cart")
			Expect(info).NotTo(BeNil())
			Expect(info.Controller).To(Equal("cart"))

			patterns := make([]string, 0, table.Len())
			for _, m := range table.Mappings() {
				patterns = append(patterns, m.Pattern())
			}
			Expect(patterns).To(Equal([]string{"/shop/cart", "/shop/(*)", "/(**)"}))
		})
	})
})
