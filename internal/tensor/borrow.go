package tensor

import "fmt"

// borrowState counts the views checked out from one handle (an array or a view).
//
// A handle may lend any number of shared views or exactly one exclusive view,
// never both. While an exclusive view is out the handle can be neither read nor
// written; while any view is out the handle cannot be written, re-borrowed
// exclusively, or reshaped.
type borrowState struct {
	shared    int
	exclusive bool
}

func (b *borrowState) checkRead(op string) {
	if b.exclusive {
		panic(fmt.Sprintf("%s: storage is borrowed by a live mutable view", op))
	}
}

func (b *borrowState) checkWrite(op string) {
	if b.exclusive {
		panic(fmt.Sprintf("%s: storage is borrowed by a live mutable view", op))
	}
	if b.shared > 0 {
		panic(fmt.Sprintf("%s: storage is borrowed by %d live view(s)", op, b.shared))
	}
}

func (b *borrowState) acquireShared(op string) {
	b.checkRead(op)
	b.shared++
}

func (b *borrowState) acquireExclusive(op string) {
	b.checkWrite(op)
	b.exclusive = true
}

func (b *borrowState) release(exclusive bool) {
	if exclusive {
		if !b.exclusive {
			panic("release of a mutable view that was never checked out")
		}
		b.exclusive = false
		return
	}
	if b.shared == 0 {
		panic("release of a view that was never checked out")
	}
	b.shared--
}

func (b *borrowState) live() bool {
	return b.exclusive || b.shared > 0
}

// viewHandle is the borrow bookkeeping shared by View and MutView.
type viewHandle struct {
	parent    *borrowState
	exclusive bool
	released  bool
	borrows   borrowState
}

func (h *viewHandle) checkLive(op string) {
	if h.released {
		panic(fmt.Sprintf("%s: view used after Release", op))
	}
}

// Release checks the view back in to its parent. Releasing twice is a no-op.
// Panics if views sliced from this one are still live.
func (h *viewHandle) Release() {
	if h.released {
		return
	}
	if h.borrows.live() {
		panic("Release: view still has live sub-views")
	}
	h.released = true
	h.parent.release(h.exclusive)
}
