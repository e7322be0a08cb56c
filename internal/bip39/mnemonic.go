// Package bip39 implements mnemonic-to-seed derivation per BIP-39: phrase
// generation, checksum validation, normalization, and PBKDF2-HMAC-SHA512
// seed extraction.
package bip39

import (
	"regexp"
	"strings"

	"github.com/cosmos/go-bip39"

	kferrors "github.com/keyforge-hd/keyforge/pkg/errors"
)

// entropyBitsByWordCount maps a mnemonic's word count to the BIP-39
// entropy size that produces it.
var entropyBitsByWordCount = map[int]int{
	12: 128,
	15: 160,
	18: 192,
	21: 224,
	24: 256,
}

// listPrefixRegex strips numbered-list or bullet prefixes a user may paste
// in front of each word ("1. abandon", "- abandon").
var listPrefixRegex = regexp.MustCompile(`^\s*(\d+[.)]|[-*•])\s*`)

// Generate creates a new mnemonic phrase with the given word count
// (12, 15, 18, 21, or 24).
func Generate(wordCount int) (string, error) {
	bits, ok := entropyBitsByWordCount[wordCount]
	if !ok {
		return "", kferrors.WithDetails(kferrors.ErrInvalidMnemonic,
			map[string]string{"reason": "word count must be 12, 15, 18, 21, or 24"})
	}

	entropy, err := bip39.NewEntropy(bits)
	if err != nil {
		return "", kferrors.Wrap(kferrors.ErrInvalidMnemonic, "generating entropy: %v", err)
	}

	mnemonic, err := bip39.NewMnemonic(entropy)
	if err != nil {
		return "", kferrors.Wrap(kferrors.ErrInvalidMnemonic, "generating mnemonic: %v", err)
	}

	return mnemonic, nil
}

// Normalize lowercases the phrase, strips list-formatting artifacts the
// caller may have pasted in, and collapses whitespace to single spaces.
// Normalize is idempotent: Normalize(Normalize(m)) == Normalize(m).
func Normalize(phrase string) string {
	lines := strings.Split(strings.ReplaceAll(phrase, ",", " "), "\n")
	words := make([]string, 0, len(lines))
	for _, line := range lines {
		line = listPrefixRegex.ReplaceAllString(line, "")
		for _, w := range strings.Fields(line) {
			words = append(words, strings.ToLower(w))
		}
	}
	return strings.Join(words, " ")
}

// Validate checks that phrase has 12/15/18/21/24 words drawn from the
// canonical English wordlist with a correct checksum.
func Validate(phrase string) error {
	normalized := Normalize(phrase)
	words := strings.Fields(normalized)

	if _, ok := entropyBitsByWordCount[len(words)]; !ok {
		return kferrors.WithDetails(kferrors.ErrInvalidMnemonic,
			map[string]string{"reason": "word count must be 12, 15, 18, 21, or 24"})
	}

	if !bip39.IsMnemonicValid(normalized) {
		return kferrors.WithDetails(kferrors.ErrInvalidMnemonic,
			map[string]string{"reason": "checksum mismatch or unknown word"})
	}

	return nil
}

// Seed derives the 64-byte BIP-39 seed via PBKDF2-HMAC-SHA512 with 2048
// rounds, salted by "mnemonic" + passphrase. Passphrase defaults to the
// empty string. Seed does not itself validate the phrase; call Validate
// first if the phrase is untrusted input.
func Seed(phrase, passphrase string) []byte {
	return bip39.NewSeed(Normalize(phrase), passphrase)
}

// WordList returns the canonical English BIP-39 wordlist.
func WordList() []string {
	return bip39.GetWordList()
}

var wordSet map[string]struct{}

// IsValidWord reports whether w is a member of the canonical wordlist.
func IsValidWord(w string) bool {
	if wordSet == nil {
		wordSet = make(map[string]struct{}, 2048)
		for _, word := range bip39.GetWordList() {
			wordSet[word] = struct{}{}
		}
	}
	_, ok := wordSet[strings.ToLower(w)]
	return ok
}

// ZeroBytes overwrites b with zeros in place. Callers must invoke this on
// seeds and derived key material once they go out of scope, per the
// secret-handling design (spec §5, §9).
func ZeroBytes(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
