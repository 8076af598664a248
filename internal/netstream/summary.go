package netstream

// Summary counts what the walker saw across every block of one replay.
type Summary struct {
	Blocks                 int
	CorruptBlocks          int
	Frames                 int
	Packets                int
	PacketBytes            int64
	ExternalDataRecords    int
	NetFieldExports        int
	UnresolvedFieldExports int
	NetGUIDExports         int
	Groups                 []GroupSummary
}

type GroupSummary struct {
	PathName      string
	PathNameIndex uint32
	ExportCount   uint32
	FieldExports  int
}
