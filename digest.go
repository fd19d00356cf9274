package prism

import (
	"encoding/binary"
	"math"

	"github.com/akmonengine/prism/constraint"
	"github.com/cespare/xxhash/v2"
)

// Digest fingerprints the contacts of a tick: pair identifiers, state and the
// exact bits of the penetration vectors. Identical inputs give identical digests.
func Digest(contacts []*constraint.Contact) uint64 {
	h := xxhash.New()
	var buf [8]byte

	for _, contact := range contacts {
		_, _ = h.Write(contact.PolygonA.ID[:])
		_, _ = h.Write(contact.PolygonB.ID[:])
		_, _ = h.Write([]byte{byte(contact.State)})

		binary.LittleEndian.PutUint64(buf[:], math.Float64bits(contact.Penetration.X()))
		_, _ = h.Write(buf[:])
		binary.LittleEndian.PutUint64(buf[:], math.Float64bits(contact.Penetration.Y()))
		_, _ = h.Write(buf[:])
	}

	return h.Sum64()
}
