package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"

	"fleura_back_end/internal/database"
	"fleura_back_end/internal/models"

	"github.com/elastic/go-elasticsearch/v8/esapi"
)

const flowerIndex = "flowers"

//
// --- INDEXATION DANS ELASTICSEARCH ---
//

// IndexFlower pousse (ou rafraîchit) une fiche fleur dans l'index de
// recherche. Best effort : l'échec est loggé, jamais remonté au client.
func IndexFlower(f models.Flower) {
	if database.Elastic == nil {
		log.Println("⚠️ Elastic non initialisé, impossible d'indexer:", f.Name)
		return
	}

	doc := map[string]interface{}{
		"public_id":   f.PublicID,
		"name":        f.Name,
		"description": f.Description,
		"color":       f.Color,
		"tags":        f.Tags,
	}
	data, _ := json.Marshal(doc)

	req := esapi.IndexRequest{
		Index:      flowerIndex,
		DocumentID: f.PublicID,
		Body:       bytes.NewReader(data),
		Refresh:    "true",
	}

	res, err := req.Do(context.Background(), database.Elastic)
	if err != nil {
		log.Println("❌ Erreur envoi Elastic:", err)
		return
	}
	defer res.Body.Close()

	if res.IsError() {
		log.Printf("⚠️ Elastic a renvoyé une erreur pour %s: %s", f.Name, res.String())
	}
}

// RemoveFlowerFromIndex retire une fiche supprimée du catalogue.
func RemoveFlowerFromIndex(publicID string) {
	if database.Elastic == nil {
		return
	}
	req := esapi.DeleteRequest{Index: flowerIndex, DocumentID: publicID}
	res, err := req.Do(context.Background(), database.Elastic)
	if err != nil {
		log.Println("❌ Erreur suppression Elastic:", err)
		return
	}
	res.Body.Close()
}

//
// --- RECHERCHE DANS ELASTICSEARCH ---
//

// SearchFlowers interroge l'index par nom, description, couleur ou tags.
func SearchFlowers(query string) ([]string, error) {
	if database.Elastic == nil {
		return nil, errors.New("client Elasticsearch non initialisé")
	}

	var buf bytes.Buffer
	q := map[string]interface{}{
		"query": map[string]interface{}{
			"multi_match": map[string]interface{}{
				"query":  query,
				"fields": []string{"name", "description", "color", "tags"},
			},
		},
	}
	if err := json.NewEncoder(&buf).Encode(q); err != nil {
		return nil, fmt.Errorf("erreur encodage requête: %v", err)
	}

	req := esapi.SearchRequest{
		Index: []string{flowerIndex},
		Body:  &buf,
	}
	res, err := req.Do(context.Background(), database.Elastic)
	if err != nil {
		return nil, fmt.Errorf("erreur requête Elastic: %v", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		var e map[string]interface{}
		json.NewDecoder(res.Body).Decode(&e)
		log.Printf("❌ Elasticsearch erreur: %+v", e)
		return nil, errors.New("index non trouvé ou vide")
	}

	var r struct {
		Hits struct {
			Hits []struct {
				Source struct {
					PublicID string `json:"public_id"`
				} `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&r); err != nil {
		return nil, fmt.Errorf("erreur décodage réponse: %v", err)
	}

	ids := make([]string, 0, len(r.Hits.Hits))
	for _, h := range r.Hits.Hits {
		ids = append(ids, h.Source.PublicID)
	}
	return ids, nil
}
