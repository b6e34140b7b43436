// Command genseed writes sample reference data to data/seed in the formats
// the seed command reads.
package main

import (
	"compress/gzip"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"daurulang/internal/model"
	"daurulang/internal/seed"

	"gopkg.in/yaml.v3"
)

type record struct {
	kind string
	v    any
}

func main() {
	dataDir := "data/seed"

	if err := os.MkdirAll(dataDir, 0755); err != nil {
		log.Fatalf("Failed to create directory: %v", err)
	}

	plastik := model.Category{ID: "plastik", Name: "Plastik"}
	kertas := model.Category{ID: "kertas", Name: "Kertas"}
	logam := model.Category{ID: "logam", Name: "Logam"}
	kaca := model.Category{ID: "kaca", Name: "Kaca"}
	organik := model.Category{ID: "organik", Name: "Organik"}

	catalog := []record{
		{seed.KindCategory, plastik},
		{seed.KindCategory, kertas},
		{seed.KindCategory, logam},
		{seed.KindCategory, kaca},
		{seed.KindCategory, organik},
		{seed.KindWasteType, model.CatalogItem{ID: "1", Name: "Botol PET", Description: "Botol minuman plastik bening, dibilas dan tanpa label", Category: plastik, Price: model.PriceRange{Min: 1000, Max: 3000}, Unit: "kg"}},
		{seed.KindWasteType, model.CatalogItem{ID: "2", Name: "Gelas Plastik", Description: "Gelas air mineral, bukan botol", Category: plastik, Price: model.PriceRange{Min: 1500, Max: 2500}, Unit: "kg"}},
		{seed.KindWasteType, model.CatalogItem{ID: "3", Name: "Kantong Kresek", Description: "Plastik kresek bersih dan kering", Category: plastik, Price: model.PriceRange{Min: 200, Max: 500}, Unit: "kg"}},
		{seed.KindWasteType, model.CatalogItem{ID: "4", Name: "Kardus", Description: "Kemasan karton dilipat rata", Category: kertas, Price: model.PriceRange{Min: 800, Max: 1500}, Unit: "kg"}},
		{seed.KindWasteType, model.CatalogItem{ID: "5", Name: "Koran", Description: "Kertas koran bekas", Category: kertas, Price: model.PriceRange{Min: 1200, Max: 2000}, Unit: "kg"}},
		{seed.KindWasteType, model.CatalogItem{ID: "6", Name: "Kertas HVS", Description: "Kertas putih bekas cetak", Category: kertas, Price: model.PriceRange{Min: 2000, Max: 3000}, Unit: "kg"}},
		{seed.KindWasteType, model.CatalogItem{ID: "7", Name: "Kaleng Aluminium", Description: "Kaleng minuman ringan", Category: logam, Price: model.PriceRange{Min: 12000, Max: 15000}, Unit: "kg"}},
		{seed.KindWasteType, model.CatalogItem{ID: "8", Name: "Besi Tua", Description: "Potongan besi dan baja", Category: logam, Price: model.PriceRange{Min: 3000, Max: 5000}, Unit: "kg"}},
		{seed.KindWasteType, model.CatalogItem{ID: "9", Name: "Tembaga", Description: "Kabel tembaga yang sudah dikupas", Category: logam, Price: model.PriceRange{Min: 60000, Max: 80000}, Unit: "kg"}},
		{seed.KindWasteType, model.CatalogItem{ID: "10", Name: "Botol Kaca", Description: "Botol sirup dan kecap utuh", Category: kaca, Price: model.PriceRange{Min: 300, Max: 800}, Unit: "kg"}},
		{seed.KindWasteType, model.CatalogItem{ID: "11", Name: "Minyak Jelantah", Description: "Minyak goreng bekas untuk biodiesel", Category: organik, Price: model.PriceRange{Min: 4000, Max: 6000}, Unit: "liter"}},
	}

	investment := 2_500_000.0
	opportunities := []record{
		{seed.KindOpportunity, model.BusinessOpportunity{ID: "1", Title: "Kerajinan Ecobrick", Description: "Bata dari botol plastik berisi sampah kemasan", Category: "kerajinan", Income: model.PriceRange{Min: 500_000, Max: 2_000_000}, Challenges: "Pasokan botol yang stabil", Implementation: "Kumpulkan botol, isi padat, jual ke proyek taman"}},
		{seed.KindOpportunity, model.BusinessOpportunity{ID: "2", Title: "Pupuk Kompos", Description: "Kompos dari sampah dapur dan daun", Category: "organik", Investment: &investment, Income: model.PriceRange{Min: 1_000_000, Max: 3_000_000}, Challenges: "Bau dan lahan pengomposan", Implementation: "Takakura atau komposter drum"}},
		{seed.KindOpportunity, model.BusinessOpportunity{ID: "3", Title: "Pelet Plastik", Description: "Cacahan plastik untuk industri daur ulang", Category: "industri", Income: model.PriceRange{Min: 5_000_000, Max: 15_000_000}, Challenges: "Modal mesin pencacah", Implementation: "Bermitra dengan bank sampah setempat"}},
	}

	tutorials := []record{
		{seed.KindTutorial, tutorialSeed{
			ID: "1", Title: "Pot Gantung dari Botol", Description: "Pot tanaman gantung dari botol PET", Difficulty: "mudah", Duration: "30 menit",
			Content: model.TutorialContent{Materials: []string{"Botol PET 1,5 liter", "Tali rami", "Gunting"}, Steps: []string{"Potong botol melintang", "Lubangi sisi botol", "Pasang tali dan isi tanah"}, Tips: []string{"Lubangi dasar untuk drainase"}},
		}},
		{seed.KindTutorial, tutorialSeed{
			ID: "2", Title: "Ecobrick", Description: "Bata ramah lingkungan", Difficulty: "Sedang", Duration: "2 jam",
			Content: model.TutorialContent{Materials: []string{"Botol plastik", "Plastik kemasan kering", "Tongkat kayu"}, Steps: []string{"Potong kecil plastik kemasan", "Masukkan ke botol", "Padatkan dengan tongkat"}},
			encodeContent: true,
		}},
		{seed.KindTutorial, tutorialSeed{
			ID: "3", Title: "Lampu Hias Kaleng", Description: "Lampu meja dari kaleng minuman", Difficulty: "ahli", Duration: "3 jam",
			Content: model.TutorialContent{Materials: []string{"Kaleng aluminium", "Fitting lampu", "Paku"}, Steps: []string{"Buat pola lubang", "Lubangi dengan paku", "Rakit fitting"}, Tips: []string{"Gunakan sarung tangan"}},
		}},
	}

	for name, records := range map[string][]record{
		"catalog.jsonl.gz":       catalog,
		"opportunities.jsonl.gz": opportunities,
		"tutorials.jsonl.gz":     tutorials,
	} {
		filePath := filepath.Join(dataDir, name)
		if err := writeLines(filePath, records); err != nil {
			log.Fatalf("Failed to create %s: %v", name, err)
		}
		fmt.Printf("Created %s with %d records\n", filePath, len(records))
	}

	buyers := seed.Dataset{Buyers: []model.WasteBuyer{
		{ID: "1", Name: "Bank Sampah Melati", Type: model.BuyerBankSampah, Address: "Jl. Melati No. 12", City: "Bandung", Province: "Jawa Barat", Contact: "0812-1111-2222", Location: &model.Location{Latitude: -6.914, Longitude: 107.609}},
		{ID: "2", Name: "Pengepul Jaya Abadi", Type: model.BuyerPengepul, Address: "Jl. Raya Bogor Km 30", City: "Depok", Province: "Jawa Barat", Contact: "0813-3333-4444"},
		{ID: "3", Name: "PT Daur Plastik Nusantara", Type: model.BuyerPabrik, Address: "Kawasan Industri Jababeka", City: "Bekasi", Province: "Jawa Barat", Contact: "021-8900-1234", Location: &model.Location{Latitude: -6.296, Longitude: 107.155}},
		{ID: "4", Name: "Bank Sampah Induk Surabaya", Type: model.BuyerBankSampah, Address: "Jl. Ngagel Timur", City: "Surabaya", Province: "Jawa Timur", Contact: "031-555-0101"},
	}}
	filePath := filepath.Join(dataDir, "buyers.yaml")
	if err := writeYAML(filePath, buyers); err != nil {
		log.Fatalf("Failed to create buyers.yaml: %v", err)
	}
	fmt.Printf("Created %s with %d records\n", filePath, len(buyers.Buyers))

	fmt.Println("\nSample seed files created successfully!")
	fmt.Println("Load them with: go run ./cmd/seed load")
}

// tutorialSeed mirrors the tutorial line format. With encodeContent the
// content is written as a JSON string holding the object, the older export
// shape the seed reader also accepts.
type tutorialSeed struct {
	ID            string
	Title         string
	Description   string
	Difficulty    string
	Duration      string
	Content       model.TutorialContent
	encodeContent bool
}

func (t tutorialSeed) MarshalJSON() ([]byte, error) {
	var content any = t.Content
	if t.encodeContent {
		raw, err := json.Marshal(t.Content)
		if err != nil {
			return nil, err
		}
		content = string(raw)
	}
	return json.Marshal(map[string]any{
		"id":          t.ID,
		"title":       t.Title,
		"description": t.Description,
		"difficulty":  t.Difficulty,
		"duration":    t.Duration,
		"content":     content,
	})
}

func writeLines(filePath string, records []record) error {
	file, err := os.Create(filePath)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer file.Close()

	gzipWriter := gzip.NewWriter(file)
	defer gzipWriter.Close()

	for _, r := range records {
		line, err := withKind(r.kind, r.v)
		if err != nil {
			return err
		}
		if _, err := fmt.Fprintf(gzipWriter, "%s\n", line); err != nil {
			return fmt.Errorf("failed to write record: %w", err)
		}
	}

	return nil
}

// withKind encodes v as a JSON object with the kind envelope field added.
func withKind(kind string, v any) ([]byte, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("failed to encode %s: %w", kind, err)
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil, fmt.Errorf("failed to encode %s: %w", kind, err)
	}
	fields["kind"], _ = json.Marshal(kind)
	return json.Marshal(fields)
}

func writeYAML(filePath string, ds seed.Dataset) error {
	file, err := os.Create(filePath)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer file.Close()

	enc := yaml.NewEncoder(file)
	enc.SetIndent(2)
	if err := enc.Encode(ds); err != nil {
		return fmt.Errorf("failed to encode yaml: %w", err)
	}
	return enc.Close()
}
