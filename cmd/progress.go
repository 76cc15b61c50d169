/*
Copyright © 2025 Valentyn Solomko <valentyn.solomko@gmail.com>

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
package cmd

import (
	"fmt"
	"os"

	"github.com/schollz/progressbar/v3"

	"github.com/valpere/refino/internal/refiner"
)

// chunkBar renders per-chunk progress on stderr. The chunk count is only
// known once the pipeline has split the text, so the bar is created on
// the first callback.
type chunkBar struct {
	bar *progressbar.ProgressBar
}

func newChunkBar() *chunkBar {
	return &chunkBar{}
}

func (c *chunkBar) update(done, total int, res refiner.Result) {
	if c.bar == nil {
		c.bar = progressbar.NewOptions(total,
			progressbar.OptionSetDescription("refining"),
			progressbar.OptionSetWriter(os.Stderr),
			progressbar.OptionShowCount(),
			progressbar.OptionClearOnFinish(),
		)
	}
	_ = c.bar.Set(done)
	if res.Outcome == refiner.FellBack {
		fmt.Fprintf(os.Stderr, "\nchunk %d kept its corrected original\n", res.ChunkIndex+1)
	}
}

func (c *chunkBar) finish() {
	if c.bar != nil {
		_ = c.bar.Finish()
	}
}
