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
	"fmt"

	"github.com/google/uuid"

	"github.com/rulego/sqlexpr/logger"
	"github.com/rulego/sqlexpr/rsql"
	"github.com/rulego/sqlexpr/types"
)

// QueryGuid 查询标识。QueryGUID 由规范化文本生成，StructuralGUID 由匿名化文本生成，
// 只有字面量和列名不同的查询结构标识相同
type QueryGuid struct {
	Namespace      string
	QueryGUID      string
	StructuralGUID string
}

// Message 查询日志内容，查询文本总是匿名化的
type Message struct {
	Message string
	Query   string
	Guid    QueryGuid
}

func (m Message) String() string {
	return fmt.Sprintf("message=%q query=%q namespace=%q queryGUID=%s structuralGUID=%s",
		m.Message, m.Query, m.Guid.Namespace, m.Guid.QueryGUID, m.Guid.StructuralGUID)
}

// QueryLogger 匿名化查询文本后写日志
type QueryLogger struct {
	cfg       types.QueryLogConfig
	level     logger.Level
	namespace uuid.UUID
	logger    logger.Logger
}

// New 创建查询日志器，Level 为最低输出级别
func New(cfg types.QueryLogConfig, l logger.Logger) (*QueryLogger, error) {
	level, err := logger.ParseLevel(cfg.Level)
	if err != nil {
		return nil, err
	}
	switch cfg.Redact {
	case "":
		cfg.Redact = types.RedactPlaceholder
	case types.RedactPlaceholder, types.RedactHash:
	default:
		return nil, fmt.Errorf("unknown redact mode: %s", cfg.Redact)
	}
	if l == nil {
		l = logger.GetDefault()
	}
	return &QueryLogger{
		cfg:       cfg,
		level:     level,
		namespace: uuid.NewSHA1(uuid.NameSpaceOID, []byte(cfg.Namespace)),
		logger:    l,
	}, nil
}

// BuildGuids 计算查询标识
func (q *QueryLogger) BuildGuids(query, anonymized string) QueryGuid {
	return QueryGuid{
		Namespace:      q.cfg.Namespace,
		QueryGUID:      uuid.NewSHA1(q.namespace, []byte(query)).String(),
		StructuralGUID: uuid.NewSHA1(q.namespace, []byte(anonymized)).String(),
	}
}

// Anonymize 返回节点匿名化后的文本
func (q *QueryLogger) Anonymize(node rsql.Node) string {
	return Anonymize(q.cfg, node)
}

// enabled 关闭或低于最低级别时不做任何格式化
func (q *QueryLogger) enabled(level logger.Level) bool {
	return q.cfg.Enabled && level != logger.OFF && level >= q.level
}

// Log 解析查询文本后记录。无法解析的文本不会原样写出，只在 DEBUG 级别提示
func (q *QueryLogger) Log(level logger.Level, message string, query string) {
	if !q.enabled(level) {
		return
	}
	e, err := rsql.ParseExpression(query)
	if err != nil {
		q.logger.Debug("failed to parse a query in query logger, message: %s", message)
		return
	}
	q.LogExpression(level, message, e)
}

// LogExpression 记录已解析的节点
func (q *QueryLogger) LogExpression(level logger.Level, message string, node rsql.Node) {
	if !q.enabled(level) {
		return
	}
	msg, err := q.Build(message, node)
	if err != nil {
		q.logger.Debug("failed to format a query in query logger, message: %s: %v", message, err)
		return
	}
	logger.Log(q.logger, level, "%s", msg)
}

// Build 生成日志内容。格式化不完整的节点时返回错误
func (q *QueryLogger) Build(message string, node rsql.Node) (msg Message, err error) {
	defer func() {
		if r := recover(); r != nil {
			if e, ok := r.(error); ok {
				err = e
				return
			}
			err = fmt.Errorf("%v", r)
		}
	}()
	query := rsql.FormatNode(node)
	anonymized := q.Anonymize(node)
	return Message{
		Message: message,
		Query:   anonymized,
		Guid:    q.BuildGuids(query, anonymized),
	}, nil
}

func (q *QueryLogger) Debug(message, query string) {
	q.Log(logger.DEBUG, message, query)
}

func (q *QueryLogger) Info(message, query string) {
	q.Log(logger.INFO, message, query)
}

func (q *QueryLogger) Warn(message, query string) {
	q.Log(logger.WARN, message, query)
}

func (q *QueryLogger) Error(message, query string) {
	q.Log(logger.ERROR, message, query)
}
