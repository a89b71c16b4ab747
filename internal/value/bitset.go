// Released under an MIT license. See LICENSE.

package value

// Bitset is a growable set of small non-negative integers, used for
// character sets.
type Bitset struct {
	words []uint64
}

// NewBits creates a bitset with the given members.
func NewBits(members ...int) *Bitset {
	b := &Bitset{}

	for _, m := range members {
		b.Set(m, true)
	}

	return b
}

// Get returns true if n is a member.
func (b *Bitset) Get(n int) bool {
	w := n >> 6
	if n < 0 || w >= len(b.words) {
		return false
	}

	return b.words[w]&(1<<uint(n&63)) != 0
}

// Set adds or removes n.
func (b *Bitset) Set(n int, on bool) {
	if n < 0 {
		return
	}

	w := n >> 6
	for w >= len(b.words) {
		b.words = append(b.words, 0)
	}

	if on {
		b.words[w] |= 1 << uint(n&63)
	} else {
		b.words[w] &^= 1 << uint(n&63)
	}
}

// Copy returns an independent copy of b.
func (b *Bitset) Copy() *Bitset {
	words := make([]uint64, len(b.words))
	copy(words, b.words)

	return &Bitset{words: words}
}

// Len returns the number of members.
func (b *Bitset) Len() int {
	n := 0

	for _, w := range b.words {
		for ; w != 0; w &= w - 1 {
			n++
		}
	}

	return n
}

// Equal returns true if b and o have the same members.
func (b *Bitset) Equal(o *Bitset) bool {
	long, short := b.words, o.words
	if len(short) > len(long) {
		long, short = short, long
	}

	for i, w := range short {
		if long[i] != w {
			return false
		}
	}

	for _, w := range long[len(short):] {
		if w != 0 {
			return false
		}
	}

	return true
}
