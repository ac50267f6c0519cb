package kleene

const (
	// Golden ratio bit mixers.
	PHI_C32 = uint32(0x9e3779b9)
	PHI_C64 = uint64(0x9e3779b97f4a7c15)
)

func mix(key int) uint64 {
	return uint64(mix32(key))
}

// MurmurHash3算法中的32位最终混合步骤
func mix32(v int) uint32 {
	k := uint32(v)
	k = (k ^ (k >> 16)) * 0x85ebca6b
	k = (k ^ (k >> 13)) * 0xc2b2ae35
	return k ^ (k >> 16)
}

// mix64 is the 64-bit MurmurHash3 finalizer.
func mix64(k uint64) uint64 {
	k ^= k >> 33
	k *= 0xff51afd7ed558ccd
	k ^= k >> 33
	k *= 0xc4ceb9fe1a85ec53
	k ^= k >> 33
	return k
}

// combine folds v into the running hash h. Order sensitive.
func combine(h, v uint64) uint64 {
	return mix64(h*PHI_C64 + v)
}

func mixString(s string) uint64 {
	h := uint64(len(s))
	for i := 0; i < len(s); i++ {
		h = h*31 + uint64(s[i])
	}
	return mix64(h ^ PHI_C64)
}
