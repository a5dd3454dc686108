/*
Copyright © 2026 ZeroSync Authors

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

// Package parallel splits a fixed index range across workers. The batch
// field operations use it as a pure data-parallel map: no ordering between
// elements, no shared accumulator.
package parallel

import (
	"runtime"
	"sync"
)

// Execute processes the half-open range [iStart, iEnd) in parallel through
// work and waits for completion.
func Execute(iStart, iEnd int, work func(int, int)) {
	<-ExecuteAsync(iStart, iEnd, work)
}

// ExecuteAsync processes the half-open range [iStart, iEnd) in parallel
// through work and returns a channel that signals completion.
func ExecuteAsync(iStart, iEnd int, work func(int, int)) chan struct{} {
	var nbTasks int

	nbIterations := iEnd - iStart // iEnd is not included
	nbIterationsPerCpus := nbIterations / runtime.NumCPU()
	nbTasks = runtime.NumCPU()

	// more CPUs than tasks: a CPU will work on exactly one iteration
	if nbIterationsPerCpus < 1 {
		nbIterationsPerCpus = 1
		nbTasks = nbIterations
	}

	var wg sync.WaitGroup

	extraTasks := iEnd - (iStart + nbTasks*nbIterationsPerCpus)
	extraTasksOffset := 0

	for i := 0; i < nbTasks; i++ {
		wg.Add(1)
		_start := iStart + i*nbIterationsPerCpus + extraTasksOffset
		_end := _start + nbIterationsPerCpus
		if extraTasks > 0 {
			_end++
			extraTasks--
			extraTasksOffset++
		}
		go func() {
			work(_start, _end)
			wg.Done()
		}()
	}

	chDone := make(chan struct{}, 1)
	go func() {
		wg.Wait()
		chDone <- struct{}{}
	}()
	return chDone
}
