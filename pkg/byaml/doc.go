/*
Package byaml reads and writes BYAML v1 files: big-endian binary trees of
dictionaries, arrays, strings, numbers and path geometry, with strings and
paths interned in shared pools.

# Quick Start

Parse a file already in memory:

	f, err := byaml.Parse(data)
	if err != nil {
	    return err
	}
	laps := byaml.GetValue(f.Root, "LapNumber", byaml.Int(3))

Open a file from disk (memory-mapped while parsing):

	f, err := byaml.Open("Course_muunt.byaml")

# Tree API

Every node implements Node. Containers are *Array, *Dictionary,
*StringArray and *PathArray; values are String, PathRef, Bool, Int and
Float. Dictionaries keep file order. Lookup walks slash-separated paths:

	n, err := byaml.Lookup(f.Root, "Obj/0/Translate")
	pos, err := n.(*byaml.Dictionary).Vector3()

Vector3 applies the fixed axis remap (X, -Z, Y) from file space to
application space; NewVector3Dictionary applies the inverse.

# Writing

Edit the tree in place and encode it again:

	d := f.Root.(*byaml.Dictionary)
	d.Set("LapNumber", byaml.Int(5))
	out, err := f.Encode(byaml.EncodeOptions{})

Pools are rebuilt from the tree: names and strings are sorted and
de-duplicated, existing pool entries are kept.

# Error Handling

Decode errors are *types.Error values classified by kind and re-exported
here (ErrInvalidMagic, ErrUnsupportedVersion, ErrOutOfBounds,
ErrUnsupportedNodeTag, ErrIndexOutOfRange, ErrCorrupt). Use errors.Is:

	if errors.Is(err, byaml.ErrUnsupportedNodeTag) {
	    var te *byaml.TagError
	    errors.As(err, &te) // te.Tag, te.Offset
	}

A failed parse never returns a partial tree.
*/
package byaml
