package service

// SortWay 文章列表排序方式
type SortWay string

const (
	SortUpdateNumAtDesc SortWay = "-updateNumAt"
	SortUpdateNumAtAsc  SortWay = "updateNumAt"
	SortPublishAtDesc   SortWay = "-publishAt"
	SortPublishAtAsc    SortWay = "publishAt"
)

// 空值一律视为最小：升序排最前，降序排最后
var postOrders = map[SortWay][]string{
	SortUpdateNumAtDesc: {"update_num_at DESC NULLS LAST"},
	SortUpdateNumAtAsc:  {"update_num_at ASC NULLS FIRST"},
	SortPublishAtDesc:   {"publish_at DESC NULLS LAST", "msg_idx ASC NULLS FIRST"},
	SortPublishAtAsc:    {"publish_at ASC NULLS FIRST", "msg_idx ASC NULLS FIRST"},
}

// Resolve 未识别的取值按 -publishAt 处理
func (s SortWay) Resolve() SortWay {
	if _, ok := postOrders[s]; ok {
		return s
	}
	return SortPublishAtDesc
}

// OrderBy 返回排序子句，末尾追加 id 保证分页稳定
func (s SortWay) OrderBy() []string {
	clauses := postOrders[s.Resolve()]
	out := make([]string, 0, len(clauses)+1)
	out = append(out, clauses...)
	return append(out, "id ASC")
}
