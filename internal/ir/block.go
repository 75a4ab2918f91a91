package ir

// Block is an ordered sequence of instructions terminated by a branch. It
// owns a stable id and name and holds its predecessor/successor lists,
// mirroring the teacher's basicBlock shape but keyed for the classic
// uses/dests SSA variant this package implements rather than wazero's
// block-argument variant.
type Block struct {
	id   int
	fn   *Function
	name string

	instrs []*Instruction

	preds []*Block
	succs []*Block

	sealed bool
}

// ID returns the block's stable arena index.
func (b *Block) ID() int { return b.id }

// Name returns the block's printable name, e.g. "blk0".
func (b *Block) Name() string {
	if b.name != "" {
		return b.name
	}
	return "blk" + itoa(b.id)
}

// SetName overrides the default "blk<id>" name.
func (b *Block) SetName(name string) { b.name = name }

// Instrs returns the ordered instruction list. The last element, if any, is
// the block's terminator.
func (b *Block) Instrs() []*Instruction { return b.instrs }

// Preds returns the block's predecessor list.
func (b *Block) Preds() []*Block { return b.preds }

// Succs returns the block's successor list, derived from the terminator's
// targets at the time each Append call ran.
func (b *Block) Succs() []*Block { return b.succs }

// Terminator returns the block's last instruction, or nil if the block is
// still empty.
func (b *Block) Terminator() *Instruction {
	if len(b.instrs) == 0 {
		return nil
	}
	return b.instrs[len(b.instrs)-1]
}

// Append inserts instr at the tail of the block. If instr is a branch, its
// targets are linked as this block's successors and this block is added to
// each target's predecessor list, per the CFG-edge linkage the emission
// driver and phi resolution rely on.
func (b *Block) Append(instr *Instruction) {
	if term := b.Terminator(); term != nil && term.IsBranch() {
		bug("Append: block %s already has a terminator (%s), cannot append %s", b.Name(), term.mnemonic, instr.mnemonic)
	}
	instr.parent = b
	b.instrs = append(b.instrs, instr)
	if instr.IsBranch() {
		for _, t := range instr.targets {
			b.linkSucc(t)
		}
	}
}

func (b *Block) linkSucc(succ *Block) {
	for _, s := range b.succs {
		if s == succ {
			return
		}
	}
	if succ.sealed {
		bug("Append: block %s is sealed, cannot add %s as a new predecessor", succ.Name(), b.Name())
	}
	b.succs = append(b.succs, succ)
	succ.preds = append(succ.preds, b)
}

// Edge identifies a (pred, succ) CFG edge, used as the key into the
// specialised edge map phi resolution and the emission driver both consume.
type Edge struct {
	Pred, Succ *Block
}

// Edges returns every (pred, succ) edge reachable from this block as the
// predecessor side, in successor order.
func (b *Block) Edges() []Edge {
	edges := make([]Edge, 0, len(b.succs))
	for _, s := range b.succs {
		edges = append(edges, Edge{Pred: b, Succ: s})
	}
	return edges
}

// IsCritical reports whether this block, as a predecessor of succ, forms a
// critical edge: this block has more than one successor. The emission
// driver's block loop emits an edge-transition stub inline at succ's entry
// precisely when this holds, since the stub cannot be appended
// unambiguously to the tail of a multi-successor predecessor.
func (b *Block) IsCritical() bool {
	return len(b.succs) > 1
}

// Seal marks the block's predecessor set as final. The block-builder
// package-level contract (mirroring the teacher's addPred/"BUG: trying to
// add predecessor to a sealed block" check) is enforced by linkSucc, which
// panics on any Append that would add a new predecessor edge to a sealed
// block; relinking an edge that already exists is still allowed.
func (b *Block) Seal() { b.sealed = true }

// Sealed reports whether Seal has been called.
func (b *Block) Sealed() bool { return b.sealed }
