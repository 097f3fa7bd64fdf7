package bin

import (
	"bytes"
	"errors"
	"testing"

	"github.com/castapi/castfile"
)

// 16-byte header, no roots.
const emptyfile = "cast\x01\x00\x00\x00\x00\x00\x00\x00\x00\x00\x00\x00"

// One bare root node.
const goodfile = "cast\x01\x00\x00\x00\x01\x00\x00\x00\x00\x00\x00\x00" +
	"root\x18\x00\x00\x00\x00\x00\x00\x00\x00\x00\x00\x00\x00\x00\x00\x00\x00\x00\x00\x00"

// Wrong magic.
const badfile = "tsac\x01\x00\x00\x00\x00\x00\x00\x00\x00\x00\x00\x00"

// Version 2 is not recognized.
const verfile = "cast\x02\x00\x00\x00\x00\x00\x00\x00\x00\x00\x00\x00"

// The root node declares 28 bytes but spans 24.
const tamperfile = "cast\x01\x00\x00\x00\x01\x00\x00\x00\x00\x00\x00\x00" +
	"root\x1C\x00\x00\x00\x00\x00\x00\x00\x00\x00\x00\x00\x00\x00\x00\x00\x00\x00\x00\x00"

// The root node carries one property of unknown type 0x7A with key "x".
const badpropfile = "cast\x01\x00\x00\x00\x01\x00\x00\x00\x00\x00\x00\x00" +
	"root\x21\x00\x00\x00\x00\x00\x00\x00\x00\x00\x00\x00\x01\x00\x00\x00\x00\x00\x00\x00" +
	"\x7A\x00\x01\x00\x00\x00\x00\x00x"

// The reserved header bytes are nonzero.
const reservedfile = "cast\x01\x00\x00\x00\x00\x00\x00\x00\x01\x00\x00\x00"

func TestDecodeEmpty(t *testing.T) {
	doc, err := Deserialize(bytes.NewReader([]byte(emptyfile)))
	if err != nil {
		t.Fatalf("decode empty: %s", err)
	}
	if len(doc.Roots) != 0 {
		t.Errorf("got %d roots, expected 0", len(doc.Roots))
	}
}

func TestEncodeEmpty(t *testing.T) {
	var buf bytes.Buffer
	if err := Serialize(&buf, castfile.NewDocument()); err != nil {
		t.Fatalf("encode empty: %s", err)
	}
	if !bytes.Equal(buf.Bytes(), []byte(emptyfile)) {
		t.Errorf("encoded empty document is % 02X", buf.Bytes())
	}
}

func TestDecodeGood(t *testing.T) {
	doc, warn, err := Decoder{}.Decode(bytes.NewReader([]byte(goodfile)))
	if err != nil {
		t.Fatalf("decode: %s", err)
	}
	if warn != nil {
		t.Errorf("unexpected warning: %s", warn)
	}
	if len(doc.Roots) != 1 {
		t.Fatalf("got %d roots, expected 1", len(doc.Roots))
	}
	root := doc.Roots[0]
	if root.Identifier != castfile.RootID {
		t.Errorf("root identifier %08X", root.Identifier)
	}
	if root.PropertyCount() != 0 || root.ChildCount() != 0 {
		t.Errorf("root is not bare")
	}

	var buf bytes.Buffer
	if err := Serialize(&buf, doc); err != nil {
		t.Fatalf("encode: %s", err)
	}
	if !bytes.Equal(buf.Bytes(), []byte(goodfile)) {
		t.Errorf("round trip produced % 02X", buf.Bytes())
	}
}

func TestDecodeBadMagic(t *testing.T) {
	_, err := Deserialize(bytes.NewReader([]byte(badfile)))
	if !errors.Is(err, ErrInvalidSig) {
		t.Errorf("got %v, expected invalid signature", err)
	}
}

func TestDecodeBadVersion(t *testing.T) {
	_, err := Deserialize(bytes.NewReader([]byte(verfile)))
	var verr ErrUnrecognizedVersion
	if !errors.As(err, &verr) {
		t.Fatalf("got %v, expected unrecognized version", err)
	}
	if uint32(verr) != 2 {
		t.Errorf("got version %d, expected 2", uint32(verr))
	}
}

func TestDecodeSizeMismatch(t *testing.T) {
	_, err := Deserialize(bytes.NewReader([]byte(tamperfile)))
	var serr ErrSizeMismatch
	if !errors.As(err, &serr) {
		t.Fatalf("got %v, expected size mismatch", err)
	}
	if serr.Declared != 28 || serr.Actual != 24 {
		t.Errorf("got declared %d actual %d, expected 28 and 24", serr.Declared, serr.Actual)
	}
	if serr.Identifier != castfile.RootID {
		t.Errorf("mismatch reported on %08X", serr.Identifier)
	}
}

func TestDecodeUnknownPropType(t *testing.T) {
	_, err := Deserialize(bytes.NewReader([]byte(badpropfile)))
	var perr ErrUnknownPropType
	if !errors.As(err, &perr) {
		t.Fatalf("got %v, expected unknown property type", err)
	}
	if uint16(perr) != 0x7A {
		t.Errorf("got type 0x%X, expected 0x7A", uint16(perr))
	}
}

func TestDecodeTruncated(t *testing.T) {
	for _, cut := range []int{0, 3, 15, 20, len(goodfile) - 1} {
		if _, err := Deserialize(bytes.NewReader([]byte(goodfile[:cut]))); err == nil {
			t.Errorf("decode of %d-byte prefix succeeded", cut)
		}
	}
}

func TestDecodeReservedWarning(t *testing.T) {
	doc, warn, err := Decoder{}.Decode(bytes.NewReader([]byte(reservedfile)))
	if err != nil {
		t.Fatalf("decode: %s", err)
	}
	if warn == nil {
		t.Errorf("expected a reserved-bytes warning")
	}
	if doc == nil || len(doc.Roots) != 0 {
		t.Errorf("document not decoded alongside warning")
	}

	if _, _, err := (Decoder{Strict: true}).Decode(bytes.NewReader([]byte(reservedfile))); err == nil {
		t.Errorf("strict decode accepted nonzero reserved bytes")
	}
}

func TestDecodeNilReader(t *testing.T) {
	if _, _, err := (Decoder{}).Decode(nil); err == nil {
		t.Errorf("expected error for nil reader")
	}
}

func TestRegisteredFormat(t *testing.T) {
	doc, err := castfile.Load(bytes.NewReader([]byte(goodfile)))
	if err != nil {
		t.Fatalf("load: %s", err)
	}
	var buf bytes.Buffer
	if err := castfile.Save(&buf, doc); err != nil {
		t.Fatalf("save: %s", err)
	}
	if !bytes.Equal(buf.Bytes(), []byte(goodfile)) {
		t.Errorf("load/save round trip produced % 02X", buf.Bytes())
	}

	buf.Reset()
	if err := castfile.SaveNode(&buf, castfile.NewNode(castfile.RootID, nil)); err != nil {
		t.Fatalf("save node: %s", err)
	}
	if !bytes.Equal(buf.Bytes(), []byte(goodfile)) {
		t.Errorf("single-node save produced % 02X", buf.Bytes())
	}
}

func TestDumpSmoke(t *testing.T) {
	var buf bytes.Buffer
	warn, err := Decoder{}.Dump(&buf, bytes.NewReader([]byte(goodfile)))
	if err != nil {
		t.Fatalf("dump: %s", err)
	}
	if warn != nil {
		t.Errorf("unexpected warning: %s", warn)
	}
	if !bytes.Contains(buf.Bytes(), []byte("Roots: 1")) {
		t.Errorf("dump output missing root count:\n%s", buf.String())
	}
	if !bytes.Contains(buf.Bytes(), []byte("root")) {
		t.Errorf("dump output missing node kind:\n%s", buf.String())
	}
}
