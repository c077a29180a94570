package domain

// VerificationReport は検証実行の各チェック結果を集約する。
type VerificationReport struct {
	StructureOK    bool // テーブル構造チェックの結果
	DataConsistent bool // データ整合性チェックの結果（全体結果には影響しない）
	LogUpdated     bool // migration_log更新の結果
	DryRun         bool // trueの場合、migration_logへの書き込みをスキップ
}

// Success は実行全体の成否を返す。
// 整合性チェックの結果は警告扱いであり、成否には含めない。
func (r *VerificationReport) Success() bool {
	if r.DryRun {
		return r.StructureOK
	}
	return r.StructureOK && r.LogUpdated
}
