package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strconv"
	"time"

	zebra "github.com/iwtcode/zplAdapter"
	"github.com/iwtcode/zplAdapter/status"
	"github.com/iwtcode/zplAdapter/zpl"
	"github.com/joho/godotenv"
)

const usage = `usage: app <command> [args]

commands:
  print [file.zpl]   send a ZPL file, or a demo label when no file is given
  status             query ~HQES and print decoded errors and warnings
  memory             query ~HM and print memory usage
  info               collect serial number, MAC, odometer, firmware and memory
  render <out.png>   render the demo label through Labelary
  convert <image>    convert an image to a ^GFA field through Labelary
  watch [seconds]    poll ~HQES until interrupted (default every 5 seconds)`

// runStep - обертка, которая логирует начало и конец шага
// и завершает программу при ошибке.
func runStep(name string, fn func() error) {
	log.Printf("--- Запуск шага: %s ---", name)

	if err := fn(); err != nil {
		log.Fatalf("Ошибка выполнения на шаге %s: %v", name, err)
	}

	log.Printf("--- Шаг %s выполнен успешно ---", name)
	fmt.Println("==================================================")
}

func main() {
	if len(os.Args) < 2 {
		fmt.Println(usage)
		os.Exit(2)
	}

	// 1) Загрузка конфигурации
	err := godotenv.Load("./.env")
	if err != nil {
		log.Printf("Warning: Could not load .env file. Using default values or environment variables: %v", err)
	}

	cfg := zebra.Load()
	if path := os.Getenv("ZPL_CONFIG_FILE"); path != "" {
		cfg, err = zebra.LoadFile(path)
		if err != nil {
			log.Fatalf("Ошибка загрузки конфигурации: %v", err)
		}
	}
	log.Printf("Конфигурация загружена: Host=%s, Port=%d, Timeout=%dms", cfg.Host, cfg.Port, cfg.ConnectTimeoutMs)

	// 2) Создание клиента
	client, err := zebra.New(cfg)
	if err != nil {
		log.Fatalf("Ошибка создания клиента: %v", err)
	}
	logger := client.GetLogger()

	switch cmd := os.Args[1]; cmd {
	case "print":
		runStep("Print", func() error {
			if len(os.Args) > 2 {
				data, err := os.ReadFile(os.Args[2])
				if err != nil {
					return err
				}
				logger.Infof("Отправка файла %s (%d байт)", os.Args[2], len(data))
				return client.Send(string(data))
			}
			logger.Info("Отправка демонстрационной этикетки")
			return client.PrintLabel(demoLabel(), false)
		})

	case "status":
		runStep("GetStatus", func() error {
			st, err := client.GetStatus()
			if err != nil {
				return err
			}
			printStatus(st)
			return nil
		})

	case "memory":
		runStep("GetMemoryStatus", func() error {
			m, err := client.GetMemoryStatus()
			if err != nil {
				return err
			}
			printAsJSON("MemoryStatus", m)

			percent, err := status.UsagePercent(*m)
			if err != nil {
				logger.Warnf("Предупреждение: не удалось вычислить загрузку памяти: %v", err)
				return nil // Не считаем это фатальной ошибкой
			}
			fmt.Printf("Использовано памяти: %.1f%%\n", percent)
			return nil
		})

	case "info":
		runStep("GetPrinterInfo", func() error {
			info, err := client.GetPrinterInfo()
			if err != nil {
				return err
			}
			printAsJSON("PrinterInfo", info)
			return nil
		})

	case "render":
		if len(os.Args) < 3 {
			log.Fatalf("Не указан файл для сохранения PNG\n%s", usage)
		}
		runStep("Render", func() error {
			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()

			png, err := client.Render(ctx, demoLabel().Commands()...)
			if err != nil {
				return err
			}
			return os.WriteFile(os.Args[2], png, 0644)
		})

	case "convert":
		if len(os.Args) < 3 {
			log.Fatalf("Не указан файл изображения\n%s", usage)
		}
		runStep("ConvertImage", func() error {
			data, err := os.ReadFile(os.Args[2])
			if err != nil {
				return err
			}
			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()

			field, err := client.ConvertImage(ctx, data)
			if err != nil {
				return err
			}
			logger.Infof("Получено изображение %dx%d точек", field.Width, field.Height)
			fmt.Println(zpl.Serialize(field))
			return nil
		})

	case "watch":
		interval := 5 * time.Second
		if len(os.Args) > 2 {
			sec, err := strconv.Atoi(os.Args[2])
			if err != nil || sec <= 0 {
				log.Fatalf("Некорректный интервал %q", os.Args[2])
			}
			interval = time.Duration(sec) * time.Second
		}
		runStep("StartPolling", func() error {
			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
			defer stop()

			for res := range client.StartPolling(ctx, interval) {
				if res.Err != nil {
					logger.Errorf("Ошибка опроса: %v", res.Err)
					continue
				}
				fmt.Printf("[%s] %s\n", res.Time.Format("15:04:05"), res.Status)
			}
			return nil
		})

	default:
		log.Fatalf("Неизвестная команда %q\n%s", cmd, usage)
	}
}

func demoLabel() *zpl.Label {
	return zpl.NewLabel().
		Text(50, 50, zpl.Normal, 50, 50, "Hello World!").
		FieldOrigin(50, 120).
		GraphicBox(700, 3, 3).
		FieldSeparator().
		Add(
			zpl.BarcodeDefaults{ModuleWidth: 2, Ratio: 3, Height: 100},
			zpl.FieldOrigin{X: 50, Y: 160},
			zpl.Code128{Orientation: zpl.Normal, Height: 100, PrintInterpretation: true, Mode: zpl.Code128ModeNone},
			zpl.FieldData{Data: "ZPL-0001"},
			zpl.FieldSeparator{},
		)
}

func printStatus(st *status.PrinterStatus) {
	if st.IsOK() {
		fmt.Println("Принтер готов к работе")
		return
	}
	for _, d := range st.Errors.Descriptions() {
		fmt.Printf("ERROR:   %s\n", d)
	}
	for _, d := range st.Warnings.Descriptions() {
		fmt.Printf("WARNING: %s\n", d)
	}
}

// printAsJSON форматирует данные в JSON и выводит в лог
func printAsJSON(name string, data interface{}) {
	jsonData, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		log.Printf("Ошибка маршалинга JSON для %s: %v", name, err)
		return
	}
	fmt.Printf("--- %s ---\n%s\n", name, string(jsonData))
}
