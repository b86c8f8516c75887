package firestore

import (
	"context"
	"fmt"
	"log"
	"os"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/option"
)

// FirestoreClient 計画済み経路キャッシュで使用するFirestoreクライアントのラッパー
type FirestoreClient struct {
	client *firestore.Client
}

// NewFirestoreClient 新しいFirestoreクライアントを作成する
func NewFirestoreClient(ctx context.Context, projectID string) (*FirestoreClient, error) {
	client, err := firestore.NewClient(ctx, projectID, clientOptions()...)
	if err != nil {
		return nil, fmt.Errorf("Firestoreクライアントの作成に失敗: %w", err)
	}

	log.Printf("✅ Firestore client initialized for project: %s", projectID)
	return &FirestoreClient{client: client}, nil
}

// clientOptions 実行環境に応じた認証オプションを選択する。
// Cloud Runではデフォルト認証、ローカルでは認証ファイルがあればそれを使う。
func clientOptions() []option.ClientOption {
	if os.Getenv("K_SERVICE") != "" {
		log.Printf("☁️ Cloud Run環境: デフォルト認証を使用")
		return nil
	}

	credentialsFile := os.Getenv("GOOGLE_APPLICATION_CREDENTIALS")
	if credentialsFile == "" {
		credentialsFile = "campusnav-firestore-key.json"
	}

	if _, err := os.Stat(credentialsFile); err != nil {
		log.Printf("⚠️ Credentials file not found: %s, trying with default authentication", credentialsFile)
		return nil
	}

	log.Printf("📄 Using credentials file: %s", credentialsFile)
	return []option.ClientOption{option.WithCredentialsFile(credentialsFile)}
}

// Close クライアントを閉じる
func (fc *FirestoreClient) Close() error {
	return fc.client.Close()
}

// GetClient Firestoreクライアントを取得
func (fc *FirestoreClient) GetClient() *firestore.Client {
	return fc.client
}
