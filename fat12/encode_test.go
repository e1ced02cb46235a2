package fat12

import (
	"bytes"
	"errors"
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// maxEncodable is the largest cluster count whose entries fit into one FAT.
const maxEncodable = (TableSize - 3) / pairSize * 2

func TestPackPair(t *testing.T) {
	t.Parallel()

	for _, tt := range []struct {
		a, b uint16
		want [3]byte
	}{
		{a: 0xFF0, b: 0xFFF, want: [3]byte{0xF0, 0xFF, 0xFF}},
		{a: 0xFFF, b: 0x000, want: [3]byte{0xFF, 0x0F, 0x00}},
		{a: 0x003, b: 0x004, want: [3]byte{0x03, 0x40, 0x00}},
		{a: 0x003, b: 0xFFF, want: [3]byte{0x03, 0xF0, 0xFF}},
		{a: 0xABC, b: 0x123, want: [3]byte{0xBC, 0x3A, 0x12}},
	} {
		tt := tt // copy
		t.Run(fmt.Sprintf("%03X/%03X", tt.a, tt.b), func(t *testing.T) {
			t.Parallel()
			if got := PackPair(tt.a, tt.b); got != tt.want {
				t.Fatalf("PackPair(%#x, %#x) = % X, want % X", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestUnpackPairRoundTrip(t *testing.T) {
	t.Parallel()

	for a := uint16(0); a <= 0xFFF; a++ {
		for _, b := range []uint16{0x000, 0x001, 0x00F, 0x0F0, 0x123, 0xF00, 0xFF7, 0xFFF, a, 0xFFF - a} {
			gotA, gotB := UnpackPair(PackPair(a, b))
			if gotA != a || gotB != b {
				t.Fatalf("UnpackPair(PackPair(%#x, %#x)) = (%#x, %#x)", a, b, gotA, gotB)
			}
		}
	}
}

func TestEncode(t *testing.T) {
	t.Parallel()

	for _, tt := range []struct {
		clusters int
		want     []byte
	}{
		{
			clusters: 1,
			want:     []byte{0xF0, 0xFF, 0xFF, 0xFF, 0x0F, 0x00},
		},
		{
			clusters: 2,
			want:     []byte{0xF0, 0xFF, 0xFF, 0x03, 0xF0, 0xFF},
		},
		{
			clusters: 3,
			want: []byte{
				0xF0, 0xFF, 0xFF,
				0x03, 0x40, 0x00, // 2→3, 3→4
				0xFF, 0x0F, 0x00, // 4→end, zero entry
			},
		},
		{
			clusters: 4,
			want: []byte{
				0xF0, 0xFF, 0xFF,
				0x03, 0x40, 0x00,
				0x05, 0xF0, 0xFF,
			},
		},
	} {
		tt := tt // copy
		t.Run(fmt.Sprint(tt.clusters), func(t *testing.T) {
			t.Parallel()
			got, err := Encode(tt.clusters)
			if err != nil {
				t.Fatal(err)
			}
			want := append(tt.want, make([]byte, TableSize-len(tt.want))...)
			if diff := cmp.Diff(want, got); diff != "" {
				t.Fatalf("unexpected FAT: diff (-want +got):\n%s", diff)
			}
		})
	}
}

func TestEncodeChain(t *testing.T) {
	t.Parallel()

	for n := 1; n <= maxEncodable; n++ {
		table, err := Encode(n)
		if err != nil {
			t.Fatalf("Encode(%d): %v", n, err)
		}
		if got, want := len(table), TableSize; got != want {
			t.Fatalf("Encode(%d): unexpected length: got %d, want %d", n, got, want)
		}
		if !bytes.Equal(table[:3], []byte{0xF0, 0xFF, 0xFF}) {
			t.Fatalf("Encode(%d): unexpected header % X", n, table[:3])
		}
		entries := Entries(table)
		for cluster := FirstCluster; cluster < FirstCluster+n-1; cluster++ {
			if got, want := entries[cluster], uint16(cluster+1); got != want {
				t.Fatalf("Encode(%d): entry %d = %#x, want %#x", n, cluster, got, want)
			}
		}
		if got := entries[FirstCluster+n-1]; got != EndOfChain {
			t.Fatalf("Encode(%d): last entry = %#x, want %#x", n, got, EndOfChain)
		}
		for cluster := FirstCluster + n; cluster < len(entries); cluster++ {
			if entries[cluster] != 0 {
				t.Fatalf("Encode(%d): entry %d = %#x, want free", n, cluster, entries[cluster])
			}
		}
	}
}

// TestEncodeOddTail verifies that the zero entry paired with the last entry
// of an odd cluster count leaves both its nibble and the padding zero.
func TestEncodeOddTail(t *testing.T) {
	t.Parallel()

	for _, n := range []int{1, 3, 5, 99, 1001, maxEncodable - 1} {
		table, err := Encode(n)
		if err != nil {
			t.Fatal(err)
		}
		off := usedBytes(n) - pairSize
		if got, want := table[off:off+pairSize], []byte{0xFF, 0x0F, 0x00}; !bytes.Equal(got, want) {
			t.Errorf("Encode(%d): last pair = % X, want % X", n, got, want)
		}
		if rest := table[off+pairSize:]; len(bytes.Trim(rest, "\x00")) != 0 {
			t.Errorf("Encode(%d): padding after offset %#x is not all zero", n, off+pairSize)
		}
	}
}

func TestEncodeInvalidArgument(t *testing.T) {
	t.Parallel()

	for _, n := range []int{0, -1, MaxClusters + 1, 0xFFFF} {
		if _, err := Encode(n); !errors.Is(err, ErrInvalidArgument) {
			t.Errorf("Encode(%d) = %v, want ErrInvalidArgument", n, err)
		}
	}
}

func TestEncodeOverflow(t *testing.T) {
	t.Parallel()

	if _, err := Encode(maxEncodable); err != nil {
		t.Fatalf("Encode(%d): %v", maxEncodable, err)
	}
	for _, n := range []int{maxEncodable + 1, MaxClusters} {
		if _, err := Encode(n); !errors.Is(err, ErrOverflow) {
			t.Errorf("Encode(%d) = %v, want ErrOverflow", n, err)
		}
	}
}

func TestParseClusterCount(t *testing.T) {
	t.Parallel()

	for _, tt := range []struct {
		in      string
		want    int
		wantErr bool
	}{
		{in: "1", want: 1},
		{in: "120", want: 120},
		{in: "4080", want: MaxClusters},
		{in: "0", wantErr: true},
		{in: "-1", wantErr: true},
		{in: "4081", wantErr: true},
		{in: "1.5", wantErr: true},
		{in: "0x10", wantErr: true},
		{in: "", wantErr: true},
		{in: "ten", wantErr: true},
	} {
		tt := tt // copy
		t.Run(tt.in, func(t *testing.T) {
			t.Parallel()
			got, err := ParseClusterCount(tt.in)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidArgument) {
					t.Fatalf("ParseClusterCount(%q) = %d, %v, want ErrInvalidArgument", tt.in, got, err)
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}
			if got != tt.want {
				t.Fatalf("ParseClusterCount(%q) = %d, want %d", tt.in, got, tt.want)
			}
		})
	}
}
