package token

import (
	"bytes"
)

// Tokenize scans d into its lexical elements. The returned PosDoc maps
// token offsets to line and column for error reporting.
func Tokenize(d []byte) ([]Token, *PosDoc, error) {
	doc := NewPosDoc(d)
	toks := make([]Token, 0, 16)
	i := 0
	n := len(d)
	for i < n {
		c := d[i]
		switch c {
		case ' ', '\t', '\r':
			i++
		case '\n':
			doc.nl(i)
			i++
		case '{':
			toks = append(toks, Token{Type: TLCurl, Pos: doc.Pos(i), Bytes: d[i : i+1]})
			i++
		case '}':
			toks = append(toks, Token{Type: TRCurl, Pos: doc.Pos(i), Bytes: d[i : i+1]})
			i++
		case '[':
			toks = append(toks, Token{Type: TLSquare, Pos: doc.Pos(i), Bytes: d[i : i+1]})
			i++
		case ']':
			toks = append(toks, Token{Type: TRSquare, Pos: doc.Pos(i), Bytes: d[i : i+1]})
			i++
		case ':':
			toks = append(toks, Token{Type: TColon, Pos: doc.Pos(i), Bytes: d[i : i+1]})
			i++
		case ',':
			toks = append(toks, Token{Type: TComma, Pos: doc.Pos(i), Bytes: d[i : i+1]})
			i++
		case '"':
			sz, err := bsEscQuoted(d[i:])
			if err != nil {
				return nil, doc, NewTokenizeErr(err, doc.Pos(i))
			}
			toks = append(toks, Token{Type: TString, Pos: doc.Pos(i), Bytes: d[i : i+sz]})
			i += sz
		case 't':
			if !bytes.HasPrefix(d[i:], []byte("true")) {
				return nil, doc, ExpectedErr("true", doc.Pos(i))
			}
			toks = append(toks, Token{Type: TTrue, Pos: doc.Pos(i), Bytes: d[i : i+4]})
			i += 4
		case 'f':
			if !bytes.HasPrefix(d[i:], []byte("false")) {
				return nil, doc, ExpectedErr("false", doc.Pos(i))
			}
			toks = append(toks, Token{Type: TFalse, Pos: doc.Pos(i), Bytes: d[i : i+5]})
			i += 5
		case 'n':
			if !bytes.HasPrefix(d[i:], []byte("null")) {
				return nil, doc, ExpectedErr("null", doc.Pos(i))
			}
			toks = append(toks, Token{Type: TNull, Pos: doc.Pos(i), Bytes: d[i : i+4]})
			i += 4
		case '-', '0', '1', '2', '3', '4', '5', '6', '7', '8', '9':
			sz, isFloat, err := number(d[i:])
			if err != nil {
				return nil, doc, NewTokenizeErr(err, doc.Pos(i))
			}
			tt := TInteger
			if isFloat {
				tt = TFloat
			}
			toks = append(toks, Token{Type: tt, Pos: doc.Pos(i), Bytes: d[i : i+sz]})
			i += sz
		default:
			return nil, doc, UnexpectedErr(quoteByte(c), doc.Pos(i))
		}
	}
	return toks, doc, nil
}

func quoteByte(c byte) string {
	return "'" + string(rune(c)) + "'"
}
