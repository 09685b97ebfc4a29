package secrets

import (
	"bufio"
	"crypto/rand"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"
)

const (
	// fileChunkSize bounds memory use: files of any size stream through the
	// cipher one chunk at a time.
	fileChunkSize = 64 * 1024

	lastFrameFlag = 0x01
)

// frameAAD binds each encrypted frame to its position in the stream and to
// the last-frame marker so frames cannot be reordered, duplicated, dropped or
// truncated without failing authentication.
func frameAAD(index uint64, flag byte) []byte {
	aad := make([]byte, 9)
	binary.BigEndian.PutUint64(aad, index)
	aad[8] = flag
	return aad
}

// EncryptFile encrypts the file at inPath into outPath using chunked
// AES-256-GCM with a fresh nonce per frame. Memory use is constant regardless
// of file size. On any failure the partially written output is removed; a
// partial output must never be trusted.
func (s *Service) EncryptFile(inPath, outPath string) (err error) {
	in, err := os.Open(inPath)
	if err != nil {
		return fmt.Errorf("open input file %q: %w", inPath, err)
	}
	defer in.Close()

	out, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("create output file %q: %w", outPath, err)
	}
	defer func() {
		if closeErr := out.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("close output file %q: %w", outPath, closeErr)
		}
		if err != nil {
			_ = os.Remove(outPath)
		}
	}()

	reader := bufio.NewReaderSize(in, fileChunkSize)
	writer := bufio.NewWriterSize(out, fileChunkSize)
	buf := make([]byte, fileChunkSize)
	nonceSize := s.aead.NonceSize()

	var index uint64
	for {
		n, readErr := io.ReadFull(reader, buf)
		if readErr != nil && readErr != io.EOF && readErr != io.ErrUnexpectedEOF {
			return fmt.Errorf("read input file %q: %w", inPath, readErr)
		}
		last := readErr == io.EOF || readErr == io.ErrUnexpectedEOF

		var flag byte
		if last {
			flag = lastFrameFlag
		}

		nonce := make([]byte, nonceSize)
		if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
			return errors.Join(ErrEncryptionFailed, err)
		}

		sealed := s.aead.Seal(nil, nonce, buf[:n], frameAAD(index, flag))

		if err := writer.WriteByte(flag); err != nil {
			return fmt.Errorf("write output file %q: %w", outPath, err)
		}
		if _, err := writer.Write(nonce); err != nil {
			return fmt.Errorf("write output file %q: %w", outPath, err)
		}
		if err := binary.Write(writer, binary.BigEndian, uint32(len(sealed))); err != nil {
			return fmt.Errorf("write output file %q: %w", outPath, err)
		}
		if _, err := writer.Write(sealed); err != nil {
			return fmt.Errorf("write output file %q: %w", outPath, err)
		}

		index++
		if last {
			break
		}
	}

	if err := writer.Flush(); err != nil {
		return fmt.Errorf("flush output file %q: %w", outPath, err)
	}
	return nil
}

// DecryptFile reverses EncryptFile. A stream that ends before its final frame,
// or whose frames were reordered or tampered with, fails with
// ErrDecryptionFailed or ErrInvalidCiphertext; the partial output is removed.
func (s *Service) DecryptFile(inPath, outPath string) (err error) {
	in, err := os.Open(inPath)
	if err != nil {
		return fmt.Errorf("open input file %q: %w", inPath, err)
	}
	defer in.Close()

	out, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("create output file %q: %w", outPath, err)
	}
	defer func() {
		if closeErr := out.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("close output file %q: %w", outPath, closeErr)
		}
		if err != nil {
			_ = os.Remove(outPath)
		}
	}()

	reader := bufio.NewReaderSize(in, fileChunkSize)
	writer := bufio.NewWriterSize(out, fileChunkSize)
	nonceSize := s.aead.NonceSize()
	nonce := make([]byte, nonceSize)

	var index uint64
	for {
		flag, readErr := reader.ReadByte()
		if readErr != nil {
			// Every well-formed stream terminates with a last-flagged frame,
			// so running out of bytes here means truncation.
			return errors.Join(ErrInvalidCiphertext, readErr)
		}

		if _, err := io.ReadFull(reader, nonce); err != nil {
			return errors.Join(ErrInvalidCiphertext, err)
		}

		var sealedLen uint32
		if err := binary.Read(reader, binary.BigEndian, &sealedLen); err != nil {
			return errors.Join(ErrInvalidCiphertext, err)
		}
		if sealedLen > fileChunkSize+uint32(s.aead.Overhead()) {
			return ErrInvalidCiphertext
		}

		sealed := make([]byte, sealedLen)
		if _, err := io.ReadFull(reader, sealed); err != nil {
			return errors.Join(ErrInvalidCiphertext, err)
		}

		plaintext, openErr := s.aead.Open(nil, nonce, sealed, frameAAD(index, flag))
		if openErr != nil {
			return errors.Join(ErrDecryptionFailed, openErr)
		}

		if _, err := writer.Write(plaintext); err != nil {
			return fmt.Errorf("write output file %q: %w", outPath, err)
		}

		index++
		if flag == lastFrameFlag {
			break
		}
	}

	// Trailing bytes after the final frame indicate a spliced stream.
	if _, readErr := reader.ReadByte(); readErr != io.EOF {
		return ErrInvalidCiphertext
	}

	if err := writer.Flush(); err != nil {
		return fmt.Errorf("flush output file %q: %w", outPath, err)
	}
	return nil
}
