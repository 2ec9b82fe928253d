/**
 * Copyright (c) 2019, The Artemis Authors.
 *
 * Permission to use, copy, modify, and/or distribute this software for any
 * purpose with or without fee is hereby granted, provided that the above
 * copyright notice and this permission notice appear in all copies.
 *
 * THE SOFTWARE IS PROVIDED "AS IS" AND THE AUTHOR DISCLAIMS ALL WARRANTIES
 * WITH REGARD TO THIS SOFTWARE INCLUDING ALL IMPLIED WARRANTIES OF
 * MERCHANTABILITY AND FITNESS. IN NO EVENT SHALL THE AUTHOR BE LIABLE FOR
 * ANY SPECIAL, DIRECT, INDIRECT, OR CONSEQUENTIAL DAMAGES OR ANY DAMAGES
 * WHATSOEVER RESULTING FROM LOSS OF USE, DATA OR PROFITS, WHETHER IN AN
 * ACTION OF CONTRACT, NEGLIGENCE OR OTHER TORTIOUS ACTION, ARISING OUT OF
 * OR IN CONNECTION WITH THE USE OR PERFORMANCE OF THIS SOFTWARE.
 */

package dataloader_test

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/okorienev/hiku/concurrent/future"
	"github.com/okorienev/hiku/dataloader"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
)

// The following tests are derived from:
//
//   https://github.com/facebook/dataloader/blob/420e62f/src/__tests__/dataloader-test.js.
//
// Trimmed to the behavior cache.Loader actually relies on: batching, multi-key loads, error
// propagation, and the request-coalescing/NoCacheMap paths -- cache.Loader always constructs its
// dataloader with dataloader.NoCacheMap (cache/loader.go), so the upstream suite's coverage of the
// default CacheMap (repeat-request caching, Prime/Clear, custom cache-key types, a caller-supplied
// CacheMap, and calling one loader from inside another) exercises a configuration this module never
// turns on and is not carried here.
//
// The license (BSD license) is reproduced as follows,
//
// Copyright (c) 2015, Facebook, Inc. All rights reserved.
//
// Redistribution and use in source and binary forms, with or without modification,
// are permitted provided that the following conditions are met:
//
//  * Redistributions of source code must retain the above copyright notice, this
//    list of conditions and the following disclaimer.
//
//  * Redistributions in binary form must reproduce the above copyright notice,
//    this list of conditions and the following disclaimer in the documentation
//    and/or other materials provided with the distribution.
//
//  * Neither the name Facebook nor the names of its contributors may be used to
//    endorse or promote products derived from this software without specific
//    prior written permission.
//
// THIS SOFTWARE IS PROVIDED BY THE COPYRIGHT HOLDERS AND CONTRIBUTORS "AS IS" AND
// ANY EXPRESS OR IMPLIED WARRANTIES, INCLUDING, BUT NOT LIMITED TO, THE IMPLIED
// WARRANTIES OF MERCHANTABILITY AND FITNESS FOR A PARTICULAR PURPOSE ARE
// DISCLAIMED. IN NO EVENT SHALL THE COPYRIGHT HOLDER OR CONTRIBUTORS BE LIABLE FOR
// ANY DIRECT, INDIRECT, INCIDENTAL, SPECIAL, EXEMPLARY, OR CONSEQUENTIAL DAMAGES
// (INCLUDING, BUT NOT LIMITED TO, PROCUREMENT OF SUBSTITUTE GOODS OR SERVICES;
// LOSS OF USE, DATA, OR PROFITS; OR BUSINESS INTERRUPTION) HOWEVER CAUSED AND ON
// ANY THEORY OF LIABILITY, WHETHER IN CONTRACT, STRICT LIABILITY, OR TORT
// (INCLUDING NEGLIGENCE OR OTHERWISE) ARISING IN ANY WAY OUT OF THE USE OF THIS
// SOFTWARE, EVEN IF ADVISED OF THE POSSIBILITY OF SUCH DAMAGE.

type batchLoadLogger struct {
	// mutex that guards loadCalls
	loadCallsMutex sync.Mutex

	// keys that have been sent to identityLoader to load data
	loadCalls [][]dataloader.Key
}

func (logger *batchLoadLogger) LoadCalls() [][]dataloader.Key {
	mutex := &logger.loadCallsMutex
	mutex.Lock()
	defer mutex.Unlock()
	return logger.loadCalls
}

func (logger *batchLoadLogger) LogKeys(tasks *dataloader.TaskList) {
	var (
		mutex = &logger.loadCallsMutex

		// Collect keys.
		keys []dataloader.Key
	)

	for taskIter, taskEnd := tasks.Begin(), tasks.End(); taskIter != taskEnd; taskIter = taskIter.Next() {
		keys = append(keys, taskIter.Task.Key())
	}

	// Acquire lock to append keys to loader.loadCalls.
	mutex.Lock()
	logger.loadCalls = append(logger.loadCalls, keys)
	mutex.Unlock()
}

//===----------------------------------------------------------------------------------------====//
// identityLoader
//===----------------------------------------------------------------------------------------====//

// identityBatchLoader implements dataloader.BatchLoader which simply returns key as the loaded
// value. It also logs the batch load keys that sent to the loader.
type identityBatchLoader struct {
	logger batchLoadLogger
}

func (loader *identityBatchLoader) Load(ctx context.Context, tasks *dataloader.TaskList) {
	// Complete task with its key as loaded value.
	for taskIter, taskEnd := tasks.Begin(), tasks.End(); taskIter != taskEnd; taskIter = taskIter.Next() {
		task := taskIter.Task
		task.Complete(task.Key())
	}

	// Log keys for check.
	loader.logger.LogKeys(tasks)
}

func (loader *identityBatchLoader) LoadCalls() [][]dataloader.Key {
	return loader.logger.LoadCalls()
}

// DataLoader that uses identityBatchLoader for batch load.
type identityLoader struct {
	*dataloader.DataLoader
}

func (loader identityLoader) LoadCalls() [][]dataloader.Key {
	return loader.BatchLoader().(*identityBatchLoader).LoadCalls()
}

func newIdentityLoader(config dataloader.Config) identityLoader {
	Expect(config.BatchLoader).Should(BeNil())
	config.BatchLoader = &identityBatchLoader{}

	loader, err := dataloader.New(config)
	Expect(err).ShouldNot(HaveOccurred())

	return identityLoader{loader}
}

//===----------------------------------------------------------------------------------------====//
// evenLoader
//===----------------------------------------------------------------------------------------====//

// evenBatchLoader implements dataloader.BatchLoader which returns key as the loaded value for key
// that is an even number and an error otherwise.
type evenBatchLoader struct {
	logger batchLoadLogger
}

func (loader *evenBatchLoader) Load(ctx context.Context, tasks *dataloader.TaskList) {
	// Complete task with its key as loaded value.
	for taskIter, taskEnd := tasks.Begin(), tasks.End(); taskIter != taskEnd; taskIter = taskIter.Next() {
		task := taskIter.Task
		key := task.Key()
		if key, ok := key.(int); ok && key%2 == 0 {
			task.Complete(key)
		} else {
			task.SetError(fmt.Errorf("Odd: %+v", key))
		}
	}

	// Log keys for check.
	loader.logger.LogKeys(tasks)
}

func (loader *evenBatchLoader) LoadCalls() [][]dataloader.Key {
	return loader.logger.LoadCalls()
}

// DataLoader that uses evenBatchLoader for batch load.
type evenLoader struct {
	*dataloader.DataLoader
}

func (loader evenLoader) LoadCalls() [][]dataloader.Key {
	return loader.BatchLoader().(*evenBatchLoader).LoadCalls()
}

func newEvenLoader(config dataloader.Config) evenLoader {
	Expect(config.BatchLoader).Should(BeNil())
	config.BatchLoader = &evenBatchLoader{}

	loader, err := dataloader.New(config)
	Expect(err).ShouldNot(HaveOccurred())

	return evenLoader{loader}
}

var _ = Describe("DataLoader: Primary API", func() {
	var idLoader identityLoader

	BeforeEach(func() {
		idLoader = newIdentityLoader(dataloader.Config{})
	})

	It("throws error if batch loader is not given", func() {
		_, err := dataloader.New(dataloader.Config{})
		Expect(err).Should(MatchError("batch loader is required to construct a DataLoader"))
	})

	It("throws error when load with nil key", func() {
		_, err := idLoader.Load(nil)
		Expect(err).Should(HaveOccurred())

		_, err = idLoader.LoadMany(dataloader.KeysFromArray(nil))
		Expect(err).Should(HaveOccurred())
	})

	It("throws error if a task is completed value multiple times", func() {
		loader, err := dataloader.New(dataloader.Config{
			BatchLoader: dataloader.BatchLoadFunc(func(ctx context.Context, tasks *dataloader.TaskList) {
				task := tasks.Begin().Task

				// Complete task with its key (first time, should be ok).
				Expect(task.Complete(task.Key())).Should(Succeed())

				// Complete task with its key (second time, should fail).
				Expect(task.Complete(task.Key())).Should(MatchError("task was already completed with a value (1) but want to accept a value (1)"))

				// Complete task with an error value (second time, should fail).
				Expect(task.SetError(errors.New("Error"))).Should(MatchError("task was already completed with a value (1) but want to accept an error (Error)"))
			}),
		})
		Expect(err).ShouldNot(HaveOccurred())

		f, err := loader.Load(1)
		Expect(err).ShouldNot(HaveOccurred())

		go loader.Dispatch(context.Background())
		Expect(future.Await(f)).Should(Equal(1))
	})

	It("throws error if a task is not completed by the supplied batch loader", func() {
		loader, err := dataloader.New(dataloader.Config{
			BatchLoader: dataloader.BatchLoadFunc(func(ctx context.Context, tasks *dataloader.TaskList) {
				// All tasks remains unfinished on return.
				for taskIter, taskEnd := tasks.Begin(), tasks.End(); taskIter != taskEnd; taskIter = taskIter.Next() {
					Expect(taskIter.Task.Completed()).Should(BeFalse())
				}
			}),
		})

		Expect(err).ShouldNot(HaveOccurred())

		f, err := loader.Load(1)
		Expect(err).ShouldNot(HaveOccurred())

		go loader.Dispatch(context.Background())
		_, err = future.Await(f)
		Expect(err).Should(MatchError("dataloader.BatchLoadFunc must complete every given data loading task with either a value or an error but it doesn't complete task that loads data at key 1"))
	})

	It("builds a really really simple data loader", func() {
		f, err := idLoader.Load(1)
		Expect(err).ShouldNot(HaveOccurred())

		go idLoader.Dispatch(context.Background())
		Expect(future.Await(f)).Should(Equal(1))
	})

	It("supports loading multiple keys in one call", func() {
		f, err := idLoader.LoadMany(dataloader.KeysFromArray(1, 2))
		Expect(err).ShouldNot(HaveOccurred())
		go idLoader.Dispatch(context.Background())
		Expect(future.Await(f)).Should(Equal([]interface{}{1, 2}))

		f, err = idLoader.LoadMany(dataloader.KeysFromArray())
		Expect(err).ShouldNot(HaveOccurred())
		go idLoader.Dispatch(context.Background())
		Expect(future.Await(f)).Should(BeEmpty())
	})

	It("batches multiple requests", func() {
		f1, err := idLoader.Load(1)
		Expect(err).ShouldNot(HaveOccurred())

		f2, err := idLoader.Load(2)
		Expect(err).ShouldNot(HaveOccurred())

		go idLoader.Dispatch(context.Background())
		Expect(future.Await(future.Join(f1, f2))).Should(Equal([]interface{}{1, 2}))

		Expect(idLoader.LoadCalls()).Should(Equal([][]dataloader.Key{
			{1, 2},
		}))
	})

	It("batches multiple requests with max batch sizes", func() {
		idLoader := newIdentityLoader(dataloader.Config{
			MaxBatchSize: 2,
		})

		f1, err := idLoader.Load(1)
		Expect(err).ShouldNot(HaveOccurred())

		f2, err := idLoader.Load(2)
		Expect(err).ShouldNot(HaveOccurred())

		f3, err := idLoader.Load(3)
		Expect(err).ShouldNot(HaveOccurred())

		go idLoader.Dispatch(context.Background())
		Expect(future.Await(future.Join(f1, f2, f3))).Should(Equal([]interface{}{1, 2, 3}))

		Expect(idLoader.LoadCalls()).Should(Equal([][]dataloader.Key{
			{1, 2},
			{3},
		}))
	})

	It("coalesces identical requests", func() {
		f1a, err := idLoader.Load(1)
		Expect(err).ShouldNot(HaveOccurred())

		f1b, err := idLoader.Load(1)
		Expect(err).ShouldNot(HaveOccurred())

		go idLoader.Dispatch(context.Background())
		Expect(future.Await(future.Join(f1a, f1b))).Should(Equal([]interface{}{1, 1}))

		Expect(idLoader.LoadCalls()).Should(Equal([][]dataloader.Key{
			{1},
		}))
	})

	Describe("Represents Errors", func() {
		It("resolves to error to indicate failure", func() {
			evenLoader := newEvenLoader(dataloader.Config{})

			f1, err := evenLoader.Load(1)
			Expect(err).ShouldNot(HaveOccurred())

			go evenLoader.Dispatch(context.Background())
			_, err = future.Await(f1)
			Expect(err).Should(MatchError("Odd: 1"))

			f2, err := evenLoader.Load(2)
			Expect(err).ShouldNot(HaveOccurred())

			go evenLoader.Dispatch(context.Background())
			Expect(future.Await(f2)).Should(Equal(2))

			Expect(evenLoader.LoadCalls()).Should(Equal([][]dataloader.Key{
				{1},
				{2},
			}))
		})

		It("can represent failures and successes simultaneously", func() {
			evenLoader := newEvenLoader(dataloader.Config{})

			f1, err := evenLoader.Load(1)
			Expect(err).ShouldNot(HaveOccurred())

			f2, err := evenLoader.Load(2)
			Expect(err).ShouldNot(HaveOccurred())

			go evenLoader.Dispatch(context.Background())

			_, err = future.Await(f1)
			Expect(err).Should(MatchError("Odd: 1"))

			Expect(future.Await(f2)).Should(Equal(2))

			Expect(evenLoader.LoadCalls()).Should(Equal([][]dataloader.Key{
				{1, 2},
			}))
		})

		Describe("Accepts options", func() {
			// Note: mirrors 'batches multiple requests' above.
			It("may disable batching", func() {
				// Set MaxBatchSize to 1 to disable batch.
				idLoader := newIdentityLoader(dataloader.Config{
					MaxBatchSize: 1,
				})

				f1, err := idLoader.Load(1)
				Expect(err).ShouldNot(HaveOccurred())

				f2, err := idLoader.Load(2)
				Expect(err).ShouldNot(HaveOccurred())

				go idLoader.Dispatch(context.Background())
				Expect(future.Await(future.Join(f1, f2))).Should(Equal([]interface{}{1, 2}))

				Expect(idLoader.LoadCalls()).Should(Equal([][]dataloader.Key{
					{1},
					{2},
				}))
			})

			// cache.Loader always passes dataloader.NoCacheMap (cache/loader.go) -- this is the
			// configuration this module's domain actually runs with, unlike the default CacheMap
			// exercised by the rest of this suite.
			It("may disable caching", func() {
				idLoader := newIdentityLoader(dataloader.Config{
					CacheMap: dataloader.NoCacheMap,
				})

				a, err := idLoader.Load("A")
				Expect(err).ShouldNot(HaveOccurred())

				b, err := idLoader.Load("B")
				Expect(err).ShouldNot(HaveOccurred())

				go idLoader.Dispatch(context.Background())
				Expect(future.Await(future.Join(a, b))).Should(Equal([]interface{}{"A", "B"}))

				Expect(idLoader.LoadCalls()).Should(Equal([][]dataloader.Key{
					{"A", "B"},
				}))

				a2, err := idLoader.Load("A")
				Expect(err).ShouldNot(HaveOccurred())

				c, err := idLoader.Load("C")
				Expect(err).ShouldNot(HaveOccurred())

				go idLoader.Dispatch(context.Background())
				Expect(future.Await(future.Join(a2, c))).Should(Equal([]interface{}{"A", "C"}))

				Expect(idLoader.LoadCalls()).Should(Equal([][]dataloader.Key{
					{"A", "B"},
					{"A", "C"},
				}))

				a3, err := idLoader.Load("A")
				Expect(err).ShouldNot(HaveOccurred())

				b2, err := idLoader.Load("B")
				Expect(err).ShouldNot(HaveOccurred())

				c2, err := idLoader.Load("C")
				Expect(err).ShouldNot(HaveOccurred())

				go idLoader.Dispatch(context.Background())
				Expect(future.Await(future.Join(a3, b2, c2))).Should(Equal([]interface{}{"A", "B", "C"}))

				Expect(idLoader.LoadCalls()).Should(Equal([][]dataloader.Key{
					{"A", "B"},
					{"A", "C"},
					{"A", "B", "C"},
				}))
			})

			It("Keys are repeated in batch when cache disabled", func() {
				idLoader := newIdentityLoader(dataloader.Config{
					CacheMap: dataloader.NoCacheMap,
				})

				value1, err := idLoader.Load("A")
				Expect(err).ShouldNot(HaveOccurred())

				value2, err := idLoader.Load("C")
				Expect(err).ShouldNot(HaveOccurred())

				value3, err := idLoader.Load("D")
				Expect(err).ShouldNot(HaveOccurred())

				value4, err := idLoader.LoadMany(dataloader.KeysFromArray("C", "D", "A", "A", "B"))
				Expect(err).ShouldNot(HaveOccurred())

				go idLoader.Dispatch(context.Background())
				Expect(future.Await(value1)).Should(Equal("A"))
				Expect(future.Await(value2)).Should(Equal("C"))
				Expect(future.Await(value3)).Should(Equal("D"))
				Expect(future.Await(value4)).Should(Equal([]interface{}{"C", "D", "A", "A", "B"}))

				Expect(idLoader.LoadCalls()).Should(Equal([][]dataloader.Key{
					{"A", "C", "D", "C", "D", "A", "A", "B"},
				}))
			})
		})
	})
})
