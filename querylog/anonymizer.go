/*
 * Copyright 2025 The RuleGo Authors.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package querylog

import (
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/dchest/siphash"

	"github.com/rulego/sqlexpr/rsql"
	"github.com/rulego/sqlexpr/types"
)

// 占位模式下各类字面量的替换文本，保持原有的字面量类型
var placeholders = map[rsql.LiteralKind]string{
	rsql.LiteralBoolean:   "false",
	rsql.LiteralString:    "'[string]'",
	rsql.LiteralLong:      "0",
	rsql.LiteralDouble:    "0.0",
	rsql.LiteralDecimal:   "DECIMAL '0'",
	rsql.LiteralBinary:    "X'00'",
	rsql.LiteralNull:      "null",
	rsql.LiteralTime:      "TIME '00:00:00'",
	rsql.LiteralTimestamp: "TIMESTAMP '1970-01-01 00:00:00'",
	rsql.LiteralInterval:  "INTERVAL '0' SECOND",
	rsql.LiteralStatement: "SELECT '[query]'",
}

// anonymizer 把标识符按首次出现顺序替换为 column1..n，字面量替换为占位或摘要。
// 每次格式化使用新的实例
type anonymizer struct {
	mode   types.RedactMode
	k0, k1 uint64
	names  map[string]string
}

func newAnonymizer(cfg types.QueryLogConfig) *anonymizer {
	return &anonymizer{
		mode:  cfg.Redact,
		k0:    cfg.HashKey0,
		k1:    cfg.HashKey1,
		names: make(map[string]string),
	}
}

func (a *anonymizer) Identifier(name string) string {
	if alias, ok := a.names[name]; ok {
		return alias
	}
	alias := fmt.Sprintf("column%d", len(a.names)+1)
	a.names[name] = alias
	return alias
}

func (a *anonymizer) Literal(kind rsql.LiteralKind, text string) string {
	if kind == rsql.LiteralNull {
		return "null"
	}
	if a.mode == types.RedactHash {
		var sum [8]byte
		binary.BigEndian.PutUint64(sum[:], siphash.Hash(a.k0, a.k1, []byte(text)))
		return "'#" + hex.EncodeToString(sum[:]) + "'"
	}
	if kind == rsql.LiteralGeneric {
		// <TYPE> '<value>' 保留类型名
		if i := strings.IndexByte(text, ' '); i > 0 {
			return text[:i] + " '[value]'"
		}
	}
	if p, ok := placeholders[kind]; ok {
		return p
	}
	return "'[value]'"
}

// Anonymize 按配置格式化匿名化后的节点文本
func Anonymize(cfg types.QueryLogConfig, node rsql.Node) string {
	p := rsql.NewPrinter(true)
	p.Anonymizer = newAnonymizer(cfg)
	node.Format(p)
	return p.String()
}
