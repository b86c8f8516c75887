package database

import (
	"fmt"
	"os"

	"github.com/supabase-community/supabase-go"
)

// SupabaseClient 建物レジストリのPostgREST経路で使用するSupabaseクライアントのラッパー
type SupabaseClient struct {
	Client *supabase.Client
}

// NewSupabaseClient 環境変数の認証情報でSupabaseクライアントを作成
func NewSupabaseClient() (*SupabaseClient, error) {
	return NewSupabaseClientWithCredentials(os.Getenv("SUPABASE_URL"), os.Getenv("SUPABASE_ANON_KEY"))
}

// NewSupabaseClientWithCredentials 明示的な認証情報でSupabaseクライアントを作成
func NewSupabaseClientWithCredentials(url, anonKey string) (*SupabaseClient, error) {
	if url == "" {
		return nil, fmt.Errorf("SUPABASE_URL環境変数が設定されていません")
	}
	if anonKey == "" {
		return nil, fmt.Errorf("SUPABASE_ANON_KEY環境変数が設定されていません")
	}

	client, err := supabase.NewClient(url, anonKey, &supabase.ClientOptions{})
	if err != nil {
		return nil, fmt.Errorf("Supabaseクライアントの初期化に失敗: %w", err)
	}

	return &SupabaseClient{Client: client}, nil
}

// GetClient Supabaseクライアントを取得
func (sc *SupabaseClient) GetClient() *supabase.Client {
	return sc.Client
}

// HealthCheck buildingsテーブルへ1件だけ問い合わせて接続を確認する
func (sc *SupabaseClient) HealthCheck() error {
	if sc.Client == nil {
		return fmt.Errorf("Supabaseクライアントが初期化されていません")
	}

	_, _, err := sc.Client.From("buildings").Select("id", "exact", false).Limit(1, "").Execute()
	if err != nil {
		return fmt.Errorf("buildingsテーブルへの接続確認に失敗: %w", err)
	}
	return nil
}
