package namespace

// PrefixedData is leaf data prefixed with the namespace ID it belongs to.
type PrefixedData struct {
	namespaceLen IDSize
	prefixedData []byte
}

func (n PrefixedData) NamespaceID() ID {
	return ID(n.prefixedData[:n.namespaceLen])
}

func (n PrefixedData) Data() []byte {
	return n.prefixedData[n.namespaceLen:]
}

func (n PrefixedData) Bytes() []byte {
	return n.prefixedData
}

func (n PrefixedData) NamespaceSize() IDSize {
	return n.namespaceLen
}

// NewPrefixedData wraps data whose first namespaceLen bytes are the namespace.
func NewPrefixedData(namespaceLen IDSize, prefixedData []byte) PrefixedData {
	return PrefixedData{
		namespaceLen: namespaceLen,
		prefixedData: prefixedData,
	}
}

// PrefixedDataFrom copies nID and data into a new PrefixedData.
func PrefixedDataFrom(nID ID, data []byte) PrefixedData {
	buf := make([]byte, 0, len(nID)+len(data))
	buf = append(buf, nID...)
	buf = append(buf, data...)
	return PrefixedData{
		namespaceLen: nID.Size(),
		prefixedData: buf,
	}
}
