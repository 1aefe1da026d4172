package internal

import "errors"

func BoolErrCheck(value uint8) error {
	if (value == 0 || value == 1) { return nil }
	return errors.New("bool value must be 0 or 1")
}

func BoolToUint8(truthy bool) uint8 {
	if truthy { return 1 }
	return 0
}

// LE stands for "little endian"

func DecodeUint16LE(buffer []byte) uint16 {
	if len(buffer) < 2 { panic(len(buffer)) }
	return uint16(buffer[0]) | (uint16(buffer[1]) << 8)
}

func AppendUint8(buffer []byte, value byte) []byte {
	return append(buffer, value)
}

func AppendUint16LE(buffer []byte, value uint16) []byte {
	return append(buffer, byte(value), byte(value >> 8))
}

func AppendShortString(buffer []byte, str string) []byte {
	if len(str) > 255 { panic("AppendShortString() can't append string with len() > 255") }
	return append(append(buffer, uint8(len(str))), str...)
}
